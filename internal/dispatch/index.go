package dispatch

import "sort"

// factIndex is the read-only lookup structure built once per engine call and
// shared by every date resolved in that call.
type factIndex struct {
	// blocked[date][userName] is set when an approved, used leave exists.
	blocked map[string]map[string]struct{}
	// absent[date][seniorID] is set when the senior is absent that day.
	absent map[string]map[string]struct{}
	// riders holds each route's seniors in boarding order.
	riders map[string][]Senior
}

func buildIndex(snap Snapshot) *factIndex {
	idx := &factIndex{
		blocked: make(map[string]map[string]struct{}),
		absent:  make(map[string]map[string]struct{}),
		riders:  make(map[string][]Senior),
	}

	// Records that cannot be interpreted are dropped, which leaves the driver
	// or senior present on that date.
	for _, l := range snap.LeaveRequests {
		if l.UserName == "" || !l.Blocks() {
			continue
		}
		key, ok := normalizeDate(l.Date)
		if !ok {
			continue
		}
		if idx.blocked[key] == nil {
			idx.blocked[key] = make(map[string]struct{})
		}
		idx.blocked[key][l.UserName] = struct{}{}
	}

	for _, a := range snap.SeniorAbsences {
		if a.SeniorID == "" {
			continue
		}
		key, ok := normalizeDate(a.Date)
		if !ok {
			continue
		}
		if idx.absent[key] == nil {
			idx.absent[key] = make(map[string]struct{})
		}
		idx.absent[key][a.SeniorID] = struct{}{}
	}

	for _, s := range snap.Seniors {
		idx.riders[s.RouteID] = append(idx.riders[s.RouteID], s)
	}
	for routeID := range idx.riders {
		riders := idx.riders[routeID]
		// Stable: equal boarding orders keep insertion order.
		sort.SliceStable(riders, func(i, j int) bool {
			return riders[i].BoardingOrder < riders[j].BoardingOrder
		})
	}

	return idx
}

func (idx *factIndex) onLeave(date, driverName string) bool {
	_, ok := idx.blocked[date][driverName]
	return ok
}

func (idx *factIndex) passengers(date, routeID string) []Senior {
	all := idx.riders[routeID]
	out := make([]Senior, 0, len(all))
	absent := idx.absent[date]
	for _, s := range all {
		if _, ok := absent[s.ID]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}
