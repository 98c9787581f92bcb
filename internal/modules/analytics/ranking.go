// README: Per-driver trip tallies and the deterministic rankings built from them.
package analytics

import (
	"cmp"
	"slices"

	"fleetreport/internal/modules/trip"
	"fleetreport/internal/types"
)

type driverTally struct {
	DriverID types.ID
	Trips    int
	Earned   float64
}

// tally counts trips and sums normalised billed amounts per driver, remembering first-appearance order.
type tally struct {
	order []types.ID
	by    map[types.ID]*driverTally
}

func tallyDrivers(trips []trip.Record) *tally {
	t := &tally{by: make(map[types.ID]*driverTally)}
	for _, r := range trips {
		d, ok := t.by[r.DriverID]
		if !ok {
			d = &driverTally{DriverID: r.DriverID}
			t.by[r.DriverID] = d
			t.order = append(t.order, r.DriverID)
		}
		d.Trips++
		d.Earned += types.NormalizeAmount(r.BilledAmount)
	}
	return t
}

func (t *tally) driverIDs() []types.ID {
	return slices.Clone(t.order)
}

// rankedBy returns the tallies in first-appearance order, stably sorted by cmpFn.
// Ties therefore keep the driver that showed up first in the feed.
func (t *tally) rankedBy(cmpFn func(a, b driverTally) int) []driverTally {
	out := make([]driverTally, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.by[id])
	}
	slices.SortStableFunc(out, cmpFn)
	return out
}

func byTripsDesc(a, b driverTally) int {
	return cmp.Compare(b.Trips, a.Trips)
}

func byEarnedDesc(a, b driverTally) int {
	return cmp.Compare(b.Earned, a.Earned)
}

// maxBy returns the index of the first element whose key is strictly greater than every earlier one.
func maxBy[T any](items []T, key func(T) float64) int {
	best := -1
	for i := range items {
		if best < 0 || key(items[i]) > key(items[best]) {
			best = i
		}
	}
	return best
}
