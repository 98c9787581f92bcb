// README: Fleet-wide analysis: cash split, billed totals, multi-vehicle drivers and the two top drivers.
package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"fleetreport/internal/config"
	"fleetreport/internal/logging"
	"fleetreport/internal/modules/driver"
	"fleetreport/internal/modules/trip"
	"fleetreport/internal/types"
)

type TripFetcher interface {
	FetchTrips(ctx context.Context) ([]trip.Record, error)
}

type DriverFetcher interface {
	GetDriver(ctx context.Context, id types.ID) (*driver.Info, error)
}

type FleetService struct {
	trips   TripFetcher
	drivers DriverFetcher
	cfg     config.ReportConfig
	log     *slog.Logger
}

func NewFleetService(trips TripFetcher, drivers DriverFetcher, cfg config.ReportConfig, log *slog.Logger) *FleetService {
	return &FleetService{trips: trips, drivers: drivers, cfg: cfg, log: logging.OrDefault(log)}
}

// ComputeFleetAnalysis never returns an error. Any failure (trip feed down, an empty feed, or a
// failed lookup of one of the two top drivers) is logged and reported as a nil summary.
func (s *FleetService) ComputeFleetAnalysis(ctx context.Context) *FleetSummary {
	summary, err := s.analyze(ctx)
	if err != nil {
		logging.Error(s.log, "fleet_analysis_failed", "data is not available", err)
		return nil
	}
	return summary
}

func (s *FleetService) analyze(ctx context.Context) (*FleetSummary, error) {
	trips, err := s.trips.FetchTrips(ctx)
	if err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, ErrNoTrips
	}

	var summary FleetSummary
	var billed, cashBilled, nonCashBilled float64
	for _, r := range trips {
		amount := types.NormalizeAmount(r.BilledAmount)
		billed += amount
		switch {
		case r.IsCash.IsCash():
			summary.NoOfCashTrips++
			cashBilled += amount
		case r.IsCash.IsNonCash():
			summary.NoOfNonCashTrips++
			nonCashBilled += amount
		}
	}
	summary.BilledTotal = types.Round2(billed)
	// Cash total is not rounded, unlike the other two.
	summary.CashBilledTotal = cashBilled
	summary.NonCashBilledTotal = types.Round2(nonCashBilled)

	t := tallyDrivers(trips)
	summary.NoOfDriversWithMoreThanOneVehicle = s.countMultiVehicleDrivers(ctx, t.driverIDs())

	most := t.rankedBy(byTripsDesc)[0]
	mostInfo, err := s.drivers.GetDriver(ctx, most.DriverID)
	if err != nil {
		return nil, fmt.Errorf("most trips driver %s: %w", most.DriverID, err)
	}
	summary.MostTripsByDriver = rankedDriver(mostInfo, most)

	top := t.rankedBy(byEarnedDesc)[0]
	topInfo, err := s.drivers.GetDriver(ctx, top.DriverID)
	if err != nil {
		return nil, fmt.Errorf("highest earning driver %s: %w", top.DriverID, err)
	}
	summary.HighestEarningDriver = rankedDriver(topInfo, top)

	return &summary, nil
}

// countMultiVehicleDrivers looks every driver up concurrently. Drivers whose lookup fails are left out.
func (s *FleetService) countMultiVehicleDrivers(ctx context.Context, ids []types.ID) int {
	n := 0
	for _, o := range settleAll(ctx, ids, s.cfg.FanoutLimit, s.drivers.GetDriver) {
		if o.err != nil {
			s.log.Debug("driver lookup failed", "action", "driver_lookup_failed", "driver_id", string(o.id), "error", o.err.Error())
			continue
		}
		if o.value != nil && len(o.value.VehicleIDs) > 1 {
			n++
		}
	}
	return n
}

func rankedDriver(info *driver.Info, d driverTally) RankedDriver {
	if info == nil {
		info = &driver.Info{}
	}
	return RankedDriver{
		Name:              info.Name,
		Email:             info.Email,
		Phone:             info.Phone,
		NoOfTrips:         d.Trips,
		TotalAmountEarned: d.Earned,
	}
}
