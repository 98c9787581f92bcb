// README: Driver and vehicle lookups.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetreport/internal/logging"
	"fleetreport/internal/modules/driver"
	"fleetreport/internal/modules/vehicle"
	"fleetreport/internal/types"
)

type DriverLookup interface {
	GetDriver(ctx context.Context, id types.ID) (*driver.Info, error)
}

type VehicleLookup interface {
	Get(ctx context.Context, id types.ID) (*vehicle.Vehicle, error)
}

type LookupHandler struct {
	drivers  DriverLookup
	vehicles VehicleLookup
	log      *slog.Logger
}

func NewLookupHandler(drivers DriverLookup, vehicles VehicleLookup, log *slog.Logger) *LookupHandler {
	return &LookupHandler{drivers: drivers, vehicles: vehicles, log: logging.OrDefault(log)}
}

func (h *LookupHandler) Driver(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid driver id")
		return
	}
	info, err := h.drivers.GetDriver(c.Request.Context(), types.ID(id))
	if err != nil {
		h.writeLookupError(c, err, driver.ErrNotFound)
		return
	}
	writeJSON(c, http.StatusOK, info)
}

func (h *LookupHandler) Vehicle(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	v, err := h.vehicles.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		h.writeLookupError(c, err, vehicle.ErrNotFound)
		return
	}
	writeJSON(c, http.StatusOK, v)
}

func (h *LookupHandler) writeLookupError(c *gin.Context, err, notFound error) {
	if errors.Is(err, notFound) {
		writeError(c, http.StatusNotFound, notFound.Error())
		return
	}
	logging.Error(h.log, "lookup_failed", "lookup failed", err, "path", c.Request.URL.Path)
	writeError(c, http.StatusInternalServerError, "internal error")
}
