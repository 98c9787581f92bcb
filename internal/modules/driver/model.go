// README: Driver profile as served by the driver directory.
package driver

import "errors"

var ErrNotFound = errors.New("driver not found")

type Info struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	VehicleIDs []string `json:"vehicleID"`
}
