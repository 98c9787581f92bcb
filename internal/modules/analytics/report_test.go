package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"fleetreport/internal/modules/trip"
)

func withVehicle(r trip.Record, plate, manufacturer string) trip.Record {
	r.VehiclePlate = plate
	r.VehicleManufacturer = manufacturer
	return r
}

func TestBuildDriverReportDedupesVehicles(t *testing.T) {
	trips := []trip.Record{
		withVehicle(rec("d1", trip.FlagCash, 10), "ABC", "Ford"),
		withVehicle(rec("d1", trip.FlagCash, 10), "ABC", "Ford"),
		withVehicle(rec("d1", trip.FlagNonCash, 10), "XYZ", "Ford"),
		withVehicle(rec("d2", trip.FlagNonCash, 10), "QQQ", ""),
	}
	report := BuildDriverReport(trips)

	if len(report.Drivers) != 2 {
		t.Fatalf("drivers = %d, want 2", len(report.Drivers))
	}
	d1 := report.Drivers[0]
	if len(d1.Vehicles) != 2 || d1.Vehicles[0] != "ABC-Ford" || d1.Vehicles[1] != "XYZ-Ford" {
		t.Errorf("d1 vehicles = %v", d1.Vehicles)
	}
	if len(report.Drivers[1].Vehicles) != 0 {
		t.Errorf("d2 vehicles = %v, want none", report.Drivers[1].Vehicles)
	}
	if report.NoOfDriversWithMoreThanOneVehicle != 1 {
		t.Errorf("multi-vehicle drivers = %d, want 1", report.NoOfDriversWithMoreThanOneVehicle)
	}
}

func TestBuildDriverReportInvariants(t *testing.T) {
	trips := []trip.Record{
		rec("a", trip.FlagCash, "1,250.50"),
		rec("b", trip.FlagNonCash, 20),
		rec("a", trip.FlagUnknown, 7.25),
		rec("c", trip.FlagCash, map[string]any{"amount": 3}),
		rec("b", trip.FlagCash, nil),
		rec("a", trip.FlagNonCash, "oops"),
		rec("c", trip.FlagNonCash, 0.75),
	}
	report := BuildDriverReport(trips)

	total := 0
	for _, d := range report.Drivers {
		total += d.NoOfTrips
		if d.NoOfTrips != d.CashTrips+d.NonCashTrips {
			t.Errorf("%s: trips %d != cash %d + non-cash %d", d.DriverID, d.NoOfTrips, d.CashTrips, d.NonCashTrips)
		}
		if d.TotalAmountEarned != d.CashBilledTotal+d.NonCashBilledTotal {
			t.Errorf("%s: earned %v != %v + %v", d.DriverID, d.TotalAmountEarned, d.CashBilledTotal, d.NonCashBilledTotal)
		}
		if len(d.Trips) != d.NoOfTrips {
			t.Errorf("%s: %d trip views for %d trips", d.DriverID, len(d.Trips), d.NoOfTrips)
		}
	}
	if total != len(trips) {
		t.Errorf("sum of trips = %d, want %d", total, len(trips))
	}

	a := report.Drivers[0]
	// Unknown cash flags count as non-cash on this path.
	if a.CashTrips != 1 || a.NonCashTrips != 2 {
		t.Errorf("a cash/non-cash = %d/%d, want 1/2", a.CashTrips, a.NonCashTrips)
	}
	if a.CashBilledTotal != 1250.5 || a.NonCashBilledTotal != 7.25 {
		t.Errorf("a totals = %v/%v", a.CashBilledTotal, a.NonCashBilledTotal)
	}
	if report.MostTripsByDriver != &report.Drivers[0] {
		t.Errorf("MostTripsByDriver = %+v, want driver a", report.MostTripsByDriver)
	}
	if report.HighestEarningDriver != &report.Drivers[0] {
		t.Errorf("HighestEarningDriver = %+v, want driver a", report.HighestEarningDriver)
	}
}

func TestBuildDriverReportPicks(t *testing.T) {
	var trips []trip.Record
	trips = append(trips, repeat(rec("D1", trip.FlagCash, 25), 3)...)
	trips = append(trips, repeat(rec("D2", trip.FlagNonCash, 10), 5)...)
	report := BuildDriverReport(trips)

	if got := report.MostTripsByDriver; got == nil || got.DriverID != "D2" || got.NoOfTrips != 5 {
		t.Errorf("MostTripsByDriver = %+v, want D2", got)
	}
	if got := report.HighestEarningDriver; got == nil || got.DriverID != "D1" || got.TotalAmountEarned != 75 {
		t.Errorf("HighestEarningDriver = %+v, want D1", got)
	}
}

func TestBuildDriverReportTieKeepsFirst(t *testing.T) {
	trips := []trip.Record{
		rec("late", trip.FlagCash, 5),
		rec("early", trip.FlagCash, 5),
	}
	trips[0].DriverName = "First"
	report := BuildDriverReport(trips)

	if report.MostTripsByDriver.Name != "First" || report.HighestEarningDriver.Name != "First" {
		t.Errorf("ties should keep the first driver: %+v / %+v", report.MostTripsByDriver, report.HighestEarningDriver)
	}
}

func TestBuildDriverReportDisplayFieldsFromFirstTrip(t *testing.T) {
	first := rec("d1", trip.FlagCash, 1)
	first.DriverName, first.DriverEmail, first.DriverPhone = "Ada", "ada@example.com", "555"
	first.UserName, first.PickupAddress = "rider", "A street"
	second := rec("d1", trip.FlagCash, 2)
	second.DriverName = "Renamed"

	third := rec("d1", trip.FlagUnknown, "3")
	third.IsCashRaw = "yes"

	d := BuildDriverReport([]trip.Record{first, second, third}).Drivers[0]
	if d.Name != "Ada" || d.Email != "ada@example.com" || d.Phone != "555" {
		t.Errorf("display fields = %q %q %q", d.Name, d.Email, d.Phone)
	}
	if d.Trips[0].User != "rider" || d.Trips[0].Pickup != "A street" || d.Trips[1].Billed != 2 {
		t.Errorf("trip views = %+v", d.Trips)
	}

	body, err := json.Marshal(d.Trips)
	if err != nil {
		t.Fatal(err)
	}
	var views []map[string]any
	if err := json.Unmarshal(body, &views); err != nil {
		t.Fatal(err)
	}
	if views[0]["isCash"] != true || views[2]["isCash"] != "yes" || views[2]["billed"] != "3" {
		t.Errorf("trip views json = %s", body)
	}
}

func TestBuildDriverReportTruthyCashValues(t *testing.T) {
	payload := `[
		{"driverID": "d1", "isCash": "true", "billedAmount": 10},
		{"driverID": "d1", "isCash": 1, "billedAmount": 5},
		{"driverID": "d1", "isCash": 0, "billedAmount": 2},
		{"driverID": "d1", "isCash": "", "billedAmount": 3},
		{"driverID": "d1", "billedAmount": 4}
	]`
	var trips []trip.Record
	if err := json.Unmarshal([]byte(payload), &trips); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	d := BuildDriverReport(trips).Drivers[0]
	if d.CashTrips != 2 || d.NonCashTrips != 3 {
		t.Errorf("cash/non-cash = %d/%d, want 2/3", d.CashTrips, d.NonCashTrips)
	}
	if d.CashBilledTotal != 15 || d.NonCashBilledTotal != 9 {
		t.Errorf("cash/non-cash billed = %v/%v, want 15/9", d.CashBilledTotal, d.NonCashBilledTotal)
	}

	body, err := json.Marshal(d.Trips)
	if err != nil {
		t.Fatal(err)
	}
	var views []map[string]any
	if err := json.Unmarshal(body, &views); err != nil {
		t.Fatal(err)
	}
	want := []any{"true", float64(1), float64(0), "", nil}
	for i, w := range want {
		if views[i]["isCash"] != w {
			t.Errorf("view %d isCash = %#v, want %#v", i, views[i]["isCash"], w)
		}
	}
}

func TestBuildDriverReportEmpty(t *testing.T) {
	report := BuildDriverReport(nil)
	if report.Drivers == nil || len(report.Drivers) != 0 {
		t.Errorf("drivers = %#v, want empty slice", report.Drivers)
	}
	if report.MostTripsByDriver != nil || report.HighestEarningDriver != nil {
		t.Errorf("expected nil picks")
	}
	if report.NoOfDriversWithMoreThanOneVehicle != 0 {
		t.Errorf("multi-vehicle drivers = %d", report.NoOfDriversWithMoreThanOneVehicle)
	}

	body, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"drivers":[],"noOfDriversWithMoreThanOneVehicle":0,"mostTripsByDriver":null,"highestEarningDriver":null}`
	if string(body) != want {
		t.Errorf("json = %s, want %s", body, want)
	}
}

func TestComputeDriverReportPropagatesError(t *testing.T) {
	cause := errors.New("feed down")
	wrapped := &stubTrips{err: errors.Join(trip.ErrSourceUnavailable, cause)}

	report, err := NewReportService(wrapped, quietLogger()).ComputeDriverReport(context.Background())
	if report != nil {
		t.Errorf("expected nil report, got %+v", report)
	}
	if !errors.Is(err, cause) || !errors.Is(err, trip.ErrSourceUnavailable) {
		t.Errorf("err = %v, want it to wrap the fetch failure", err)
	}
}

func TestComputeDriverReport(t *testing.T) {
	trips := []trip.Record{rec("d1", trip.FlagCash, "12.5")}
	report, err := NewReportService(&stubTrips{trips: trips}, nil).ComputeDriverReport(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Drivers) != 1 || report.Drivers[0].TotalAmountEarned != 12.5 {
		t.Errorf("report = %+v", report)
	}
}
