package ai

import (
	"context"

	"fleetreport/internal/modules/analytics"
)

// Narrator turns a computed fleet summary into a short written briefing.
// Implementations must not change any figure; they only describe it.
type Narrator interface {
	Narrate(ctx context.Context, summary *analytics.FleetSummary) (*Narrative, error)
}
