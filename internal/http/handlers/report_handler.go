// README: Fleet summary and per-driver report endpoints; successful reports are announced as events.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetreport/internal/logging"
	"fleetreport/internal/modules/analytics"
	"fleetreport/internal/modules/trip"
)

const (
	EventFleetGenerated   = "report.fleet.generated"
	EventDriversGenerated = "report.drivers.generated"
)

const msgDataUnavailable = "data is not available"

type FleetAnalyzer interface {
	ComputeFleetAnalysis(ctx context.Context) *analytics.FleetSummary
}

type DriverReporter interface {
	ComputeDriverReport(ctx context.Context) (*analytics.DriverReport, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, v any) error
}

type ReportHandler struct {
	fleet   FleetAnalyzer
	drivers DriverReporter
	events  EventPublisher
	log     *slog.Logger
}

// NewReportHandler builds the handler; events may be nil.
func NewReportHandler(fleet FleetAnalyzer, drivers DriverReporter, events EventPublisher, log *slog.Logger) *ReportHandler {
	return &ReportHandler{fleet: fleet, drivers: drivers, events: events, log: logging.OrDefault(log)}
}

func (h *ReportHandler) Fleet(c *gin.Context) {
	summary := h.fleet.ComputeFleetAnalysis(c.Request.Context())
	if summary == nil {
		writeError(c, http.StatusServiceUnavailable, msgDataUnavailable)
		return
	}
	h.publish(c.Request.Context(), EventFleetGenerated, summary)
	writeJSON(c, http.StatusOK, summary)
}

func (h *ReportHandler) Drivers(c *gin.Context) {
	report, err := h.drivers.ComputeDriverReport(c.Request.Context())
	if err != nil {
		if errors.Is(err, trip.ErrSourceUnavailable) {
			writeError(c, http.StatusServiceUnavailable, msgDataUnavailable)
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	h.publish(c.Request.Context(), EventDriversGenerated, report)
	writeJSON(c, http.StatusOK, report)
}

// publish never fails the request; errors are only logged.
func (h *ReportHandler) publish(ctx context.Context, routingKey string, v any) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(ctx, routingKey, v); err != nil {
		logging.Error(h.log, "report_event_publish_failed", "failed to publish report event", err, "routing_key", routingKey)
	}
}
