// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetreport/internal/ai"
	"fleetreport/internal/http/handlers"
	"fleetreport/internal/http/middleware"
	"fleetreport/internal/infra"
)

// RouterDeps lists what the API serves. Verifier, Narrator, Quota and Events are optional.
type RouterDeps struct {
	Fleet    handlers.FleetAnalyzer
	Reports  handlers.DriverReporter
	Drivers  handlers.DriverLookup
	Vehicles handlers.VehicleLookup
	Narrator ai.Narrator
	Quota    handlers.TokenSpender
	Events   handlers.EventPublisher
	Verifier infra.TokenVerifier
	Log      *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	if deps.Verifier != nil {
		api.Use(middleware.Auth(deps.Verifier))
	}

	lookups := handlers.NewLookupHandler(deps.Drivers, deps.Vehicles, deps.Log)
	api.GET("/drivers/:id", lookups.Driver)
	api.GET("/vehicles/:id", lookups.Vehicle)

	reports := api.Group("/reports")
	if deps.Verifier != nil {
		reports.Use(middleware.RequireRole("admin"))
	}
	reportHandler := handlers.NewReportHandler(deps.Fleet, deps.Reports, deps.Events, deps.Log)
	reports.GET("/fleet", reportHandler.Fleet)
	reports.GET("/drivers", reportHandler.Drivers)

	narratives := handlers.NewNarrativeHandler(deps.Fleet, deps.Narrator, deps.Quota, deps.Log)
	reports.GET("/fleet/narrative", narratives.Get)

	return r
}
