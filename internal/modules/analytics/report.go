// README: Per-driver report folded from the trip feed, using the driver fields embedded in each trip.
package analytics

import (
	"context"
	"log/slog"

	"fleetreport/internal/logging"
	"fleetreport/internal/modules/trip"
	"fleetreport/internal/types"
)

type ReportService struct {
	trips TripFetcher
	log   *slog.Logger
}

func NewReportService(trips TripFetcher, log *slog.Logger) *ReportService {
	return &ReportService{trips: trips, log: logging.OrDefault(log)}
}

// ComputeDriverReport logs and returns any failure unchanged.
func (s *ReportService) ComputeDriverReport(ctx context.Context) (*DriverReport, error) {
	trips, err := s.trips.FetchTrips(ctx)
	if err != nil {
		logging.Error(s.log, "driver_report_failed", "an error occurred while fetching or processing data", err)
		return nil, err
	}
	return BuildDriverReport(trips), nil
}

// BuildDriverReport folds trips in order into one aggregate per driver. A trip counts as cash when its
// isCash value is truthy ("yes", 1, "true" included) and as non-cash otherwise, so every trip lands in
// exactly one of the two buckets.
func BuildDriverReport(trips []trip.Record) *DriverReport {
	var drivers []DriverAggregate
	index := make(map[types.ID]int)
	vehicles := make(map[types.ID]map[string]struct{})

	for _, r := range trips {
		i, ok := index[r.DriverID]
		if !ok {
			i = len(drivers)
			index[r.DriverID] = i
			vehicles[r.DriverID] = make(map[string]struct{})
			drivers = append(drivers, DriverAggregate{
				DriverID: r.DriverID,
				Name:     r.DriverName,
				Email:    r.DriverEmail,
				Phone:    r.DriverPhone,
				Vehicles: []string{},
				Trips:    []trip.View{},
			})
		}
		d := &drivers[i]

		amount := types.NormalizeAmount(r.BilledAmount)
		if r.PaidInCash() {
			d.CashTrips++
			d.CashBilledTotal += amount
		} else {
			d.NonCashTrips++
			d.NonCashBilledTotal += amount
		}
		d.TotalAmountEarned += amount
		d.Trips = append(d.Trips, r.View())
		d.NoOfTrips++

		if key := r.VehicleKey(); key != "" {
			if _, seen := vehicles[r.DriverID][key]; !seen {
				vehicles[r.DriverID][key] = struct{}{}
				d.Vehicles = append(d.Vehicles, key)
			}
		}
	}

	report := &DriverReport{Drivers: drivers}
	if report.Drivers == nil {
		report.Drivers = []DriverAggregate{}
	}
	for _, d := range report.Drivers {
		if len(d.Vehicles) > 1 {
			report.NoOfDriversWithMoreThanOneVehicle++
		}
	}
	if i := maxBy(report.Drivers, func(d DriverAggregate) float64 { return float64(d.NoOfTrips) }); i >= 0 {
		report.MostTripsByDriver = &report.Drivers[i]
	}
	if i := maxBy(report.Drivers, func(d DriverAggregate) float64 { return d.TotalAmountEarned }); i >= 0 {
		report.HighestEarningDriver = &report.Drivers[i]
	}
	return report
}
