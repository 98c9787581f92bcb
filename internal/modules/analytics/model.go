// README: Output shapes of the fleet summary and the per-driver report.
package analytics

import (
	"errors"

	"fleetreport/internal/modules/trip"
	"fleetreport/internal/types"
)

var ErrNoTrips = errors.New("no trips to analyse")

type FleetSummary struct {
	NoOfCashTrips                     int          `json:"noOfCashTrips"`
	NoOfNonCashTrips                  int          `json:"noOfNonCashTrips"`
	BilledTotal                       float64      `json:"billedTotal"`
	CashBilledTotal                   float64      `json:"cashBilledTotal"`
	NonCashBilledTotal                float64      `json:"nonCashBilledTotal"`
	NoOfDriversWithMoreThanOneVehicle int          `json:"noOfDriversWithMoreThanOneVehicle"`
	MostTripsByDriver                 RankedDriver `json:"mostTripsByDriver"`
	HighestEarningDriver              RankedDriver `json:"highestEarningDriver"`
}

// RankedDriver pairs directory display fields with the trip tally that ranked the driver.
type RankedDriver struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	NoOfTrips         int     `json:"noOfTrips"`
	TotalAmountEarned float64 `json:"totalAmountEarned"`
}

// DriverAggregate is one driver's fold over the trip feed, display fields taken from the first trip seen.
type DriverAggregate struct {
	DriverID           types.ID    `json:"-"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Phone              string      `json:"phone"`
	NoOfTrips          int         `json:"noOfTrips"`
	TotalAmountEarned  float64     `json:"totalAmountEarned"`
	Vehicles           []string    `json:"vehicles"`
	Trips              []trip.View `json:"trips"`
	CashTrips          int         `json:"cashTrips"`
	NonCashTrips       int         `json:"nonCashTrips"`
	CashBilledTotal    float64     `json:"cashBilledTotal"`
	NonCashBilledTotal float64     `json:"nonCashBilledTotal"`
}

// DriverReport picks point into Drivers; both are nil when there were no trips.
type DriverReport struct {
	Drivers                           []DriverAggregate `json:"drivers"`
	NoOfDriversWithMoreThanOneVehicle int               `json:"noOfDriversWithMoreThanOneVehicle"`
	MostTripsByDriver                 *DriverAggregate  `json:"mostTripsByDriver"`
	HighestEarningDriver              *DriverAggregate  `json:"highestEarningDriver"`
}
