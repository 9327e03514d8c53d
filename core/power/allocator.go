package power

import "sort"

// Allocate assigns CurrentPower to the enabled components in strict priority
// order from the instantaneous generation budget. Components are served
// greedily: full nominal power while the budget lasts, the remainder to the
// first component that no longer fits, zero to everything after it.
//
// The sort is stable, so same-priority components keep their catalog order.
// Disabled components are left untouched; clearing their draw is the
// responsibility of whatever disabled them.
func (r *Registry) Allocate(availableWatts float64) {
	enabled := make([]*Component, 0, len(r.comps))
	for i := range r.comps {
		if r.comps[i].Enabled {
			enabled = append(enabled, &r.comps[i])
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	remaining := availableWatts
	for _, c := range enabled {
		if remaining >= c.NominalPower {
			c.CurrentPower = c.NominalPower
			remaining -= c.NominalPower
		} else {
			c.CurrentPower = remaining
			remaining = 0
		}
	}
}
