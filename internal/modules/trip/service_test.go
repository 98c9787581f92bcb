package trip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubSource struct {
	trips []Record
	err   error
}

func (s *stubSource) ListAll(_ context.Context) ([]Record, error) {
	return s.trips, s.err
}

func TestFetchTripsPassesThrough(t *testing.T) {
	want := []Record{{DriverID: "b"}, {DriverID: "a"}, {DriverID: "b"}}
	svc := NewService(&stubSource{trips: want})

	got, err := svc.FetchTrips(context.Background())
	if err != nil {
		t.Fatalf("FetchTrips: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d trips, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].DriverID != want[i].DriverID {
			t.Errorf("order changed at %d: got %s, want %s", i, got[i].DriverID, want[i].DriverID)
		}
	}
}

func TestFetchTripsWrapsSourceError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&stubSource{err: boom})

	_, err := svc.FetchTrips(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected underlying error to be preserved, got %v", err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")
	body := `[{"driverID": "d1", "isCash": true, "billedAmount": "1,000"}, {"driverID": "d2", "isCash": false, "billedAmount": 5}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	trips, err := NewFileSource(path).ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(trips) != 2 || trips[0].DriverID != "d1" || trips[1].IsCash != FlagNonCash {
		t.Errorf("unexpected trips %+v", trips)
	}

	if _, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).ListAll(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFetchTripsRejectsUnusableDriverID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")
	body := `[{"driverID": "d1", "isCash": true, "billedAmount": 1}, {"driverID": {"x": 1}, "isCash": true, "billedAmount": 2}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	trips, err := NewService(NewFileSource(path)).FetchTrips(context.Background())
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if trips != nil {
		t.Errorf("expected no trips, got %+v", trips)
	}
}
