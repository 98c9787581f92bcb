// README: Written fleet briefing generated from the fleet summary, limited per caller per month.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetreport/internal/ai"
	"fleetreport/internal/http/middleware"
	"fleetreport/internal/logging"
	"fleetreport/internal/modules/analytics"
	"fleetreport/internal/modules/quota"
)

type TokenSpender interface {
	Remaining(ctx context.Context, uid string) (int, error)
	UseToken(ctx context.Context, uid string) error
}

type NarrativeHandler struct {
	fleet    FleetAnalyzer
	narrator ai.Narrator
	quota    TokenSpender
	log      *slog.Logger
}

type narrativeResponse struct {
	Summary         *analytics.FleetSummary `json:"summary"`
	Narrative       *ai.Narrative           `json:"narrative"`
	RemainingTokens *int                    `json:"remainingTokens,omitempty"`
}

// NewNarrativeHandler builds the handler. A nil narrator disables the endpoint; a nil quota disables metering.
func NewNarrativeHandler(fleet FleetAnalyzer, narrator ai.Narrator, spender TokenSpender, log *slog.Logger) *NarrativeHandler {
	return &NarrativeHandler{fleet: fleet, narrator: narrator, quota: spender, log: logging.OrDefault(log)}
}

func (h *NarrativeHandler) Get(c *gin.Context) {
	if h.narrator == nil {
		writeError(c, http.StatusServiceUnavailable, "narratives are disabled")
		return
	}
	ctx := c.Request.Context()

	summary := h.fleet.ComputeFleetAnalysis(ctx)
	if summary == nil {
		writeError(c, http.StatusServiceUnavailable, msgDataUnavailable)
		return
	}

	uid := middleware.CallerUID(c)
	if uid == "" {
		uid = "anonymous"
	}
	// A token is only charged for a narrative that was actually produced.
	if h.quota != nil {
		left, err := h.quota.Remaining(ctx, uid)
		if err != nil {
			h.quotaFailed(c, err, uid)
			return
		}
		if left <= 0 {
			writeError(c, http.StatusTooManyRequests, quota.ErrInsufficientTokens.Error())
			return
		}
	}

	narrative, err := h.narrator.Narrate(ctx, summary)
	if err != nil {
		logging.Error(h.log, "narrative_failed", "failed to generate narrative", err)
		writeError(c, http.StatusBadGateway, "narrative generation failed")
		return
	}

	resp := narrativeResponse{Summary: summary, Narrative: narrative}
	if h.quota != nil {
		if err := h.quota.UseToken(ctx, uid); err != nil {
			h.quotaFailed(c, err, uid)
			return
		}
		left, err := h.quota.Remaining(ctx, uid)
		if err != nil {
			h.quotaFailed(c, err, uid)
			return
		}
		resp.RemainingTokens = &left
	}
	writeJSON(c, http.StatusOK, resp)
}

func (h *NarrativeHandler) quotaFailed(c *gin.Context, err error, uid string) {
	if errors.Is(err, quota.ErrInsufficientTokens) {
		writeError(c, http.StatusTooManyRequests, err.Error())
		return
	}
	logging.Error(h.log, "narrative_quota_failed", "narrative quota lookup failed", err, "uid", uid)
	writeError(c, http.StatusInternalServerError, "internal error")
}
