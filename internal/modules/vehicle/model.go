// README: Vehicle record served by the vehicle lookup.
package vehicle

import (
	"errors"

	"fleetreport/internal/types"
)

var ErrNotFound = errors.New("vehicle not found")

type Vehicle struct {
	ID           types.ID `json:"id"`
	DriverID     types.ID `json:"driverID,omitempty"`
	Plate        string   `json:"plate"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model,omitempty"`
	Year         int      `json:"year,omitempty"`
}
