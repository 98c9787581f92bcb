// README: Settle-all concurrent lookups; one failure never cancels the rest.
package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"fleetreport/internal/types"
)

// outcome is one settled lookup: either value or err is meaningful.
type outcome[T any] struct {
	id    types.ID
	value T
	err   error
}

// settleAll runs fetch for every id and waits for all of them. A failed fetch is recorded in its
// outcome and never cancels the others. limit <= 0 means no bound on in-flight fetches.
// Outcomes come back in the order of ids.
func settleAll[T any](ctx context.Context, ids []types.ID, limit int, fetch func(context.Context, types.ID) (T, error)) []outcome[T] {
	out := make([]outcome[T], len(ids))
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			v, err := fetch(ctx, id)
			out[i] = outcome[T]{id: id, value: v, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
