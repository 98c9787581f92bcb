package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"fleetreport/internal/modules/driver"
	"fleetreport/internal/modules/trip"
	"fleetreport/internal/types"
)

var errLookup = errors.New("driver service unreachable")

type stubTrips struct {
	trips []trip.Record
	err   error
}

func (s *stubTrips) FetchTrips(_ context.Context) ([]trip.Record, error) {
	return s.trips, s.err
}

// stubDrivers is an in-memory DriverFetcher; ids in fail return errLookup.
type stubDrivers struct {
	mu    sync.Mutex
	infos map[types.ID]driver.Info
	fail  map[types.ID]bool
	calls map[types.ID]int
}

func newStubDrivers(infos map[types.ID]driver.Info, fail ...types.ID) *stubDrivers {
	s := &stubDrivers{infos: infos, fail: map[types.ID]bool{}, calls: map[types.ID]int{}}
	for _, id := range fail {
		s.fail[id] = true
	}
	return s
}

func (s *stubDrivers) GetDriver(_ context.Context, id types.ID) (*driver.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[id]++
	if s.fail[id] {
		return nil, errLookup
	}
	info, ok := s.infos[id]
	if !ok {
		return nil, driver.ErrNotFound
	}
	return &info, nil
}

func (s *stubDrivers) callCount(id types.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func rec(driverID types.ID, cash trip.CashFlag, billed any) trip.Record {
	return trip.Record{DriverID: driverID, IsCash: cash, BilledAmount: billed}
}

// repeat returns n copies of r.
func repeat(r trip.Record, n int) []trip.Record {
	out := make([]trip.Record, n)
	for i := range out {
		out[i] = r
	}
	return out
}
