package dispatch

import (
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// ResolveRange resolves every date in [start, end] and returns the days in
// ascending order. An end before start yields an empty slice.
func (e *Engine) ResolveRange(start, end time.Time, snap Snapshot) []DailyDispatch {
	dates := datesBetween(start, end)
	out := make([]DailyDispatch, len(dates))
	if len(dates) == 0 {
		return out
	}

	idx := buildIndex(snap)

	// Each goroutine writes only its own slot, and idx is never written after
	// buildIndex returns.
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, d := range dates {
		i, d := i, d
		g.Go(func() error {
			out[i] = e.resolveDay(d, snap.Routes, idx)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// SummarizeMonth folds every day of the month into calendar-cell summaries
// keyed by YYYY-MM-DD.
func (e *Engine) SummarizeMonth(year int, month time.Month, snap Snapshot) map[string]DispatchDaySummary {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	days := e.ResolveRange(first, last, snap)
	out := make(map[string]DispatchDaySummary, len(days))
	for _, day := range days {
		out[day.Date] = e.summarizeDay(day)
	}
	return out
}

func (e *Engine) summarizeDay(day DailyDispatch) DispatchDaySummary {
	s := DispatchDaySummary{
		Date:        day.Date,
		TotalRoutes: len(day.Routes),
	}
	for _, r := range day.Routes {
		switch r.Status {
		case StatusNormal:
			s.NormalCount++
		case StatusSubstitute:
			s.SubstituteCount++
		case StatusNoService:
			s.NoServiceCount++
		case StatusHoliday:
			s.IsHoliday = true
		}
	}

	// With no routes configured there is no Holiday entry to read the flag
	// from, so ask the calendar directly.
	if t, err := ParseDate(day.Date); err == nil {
		if holiday, name := e.calendar.IsNonWorkingDay(t); holiday {
			s.IsHoliday = true
			s.HolidayName = name
		}
	}
	return s
}

// FilterOptions narrows a list view. Empty fields match everything.
type FilterOptions struct {
	Statuses []Status
	RouteIDs []string
}

// Filter returns copies of days keeping only the route entries that match opts.
// Days whose routes are all filtered out are kept with an empty route list so
// the date sequence stays contiguous.
func Filter(days []DailyDispatch, opts FilterOptions) []DailyDispatch {
	statuses := make(map[Status]struct{}, len(opts.Statuses))
	for _, s := range opts.Statuses {
		statuses[s] = struct{}{}
	}
	routeIDs := make(map[string]struct{}, len(opts.RouteIDs))
	for _, id := range opts.RouteIDs {
		routeIDs[id] = struct{}{}
	}

	out := make([]DailyDispatch, 0, len(days))
	for _, day := range days {
		kept := DailyDispatch{Date: day.Date, Routes: make([]RouteDispatch, 0, len(day.Routes))}
		for _, r := range day.Routes {
			if len(statuses) > 0 {
				if _, ok := statuses[r.Status]; !ok {
					continue
				}
			}
			if len(routeIDs) > 0 {
				if _, ok := routeIDs[r.RouteID]; !ok {
					continue
				}
			}
			kept.Routes = append(kept.Routes, r)
		}
		out = append(out, kept)
	}
	return out
}

// RouteStats counts the outcomes of one route over a range.
type RouteStats struct {
	RouteID         string `json:"route_id"`
	RouteName       string `json:"route_name"`
	NormalCount     int    `json:"normal_count"`
	SubstituteCount int    `json:"substitute_count"`
	NoServiceCount  int    `json:"no_service_count"`
	HolidayCount    int    `json:"holiday_count"`
}

// DriverCoverage counts how often a driver covered for an absent primary.
type DriverCoverage struct {
	DriverID   string `json:"driver_id"`
	DriverName string `json:"driver_name"`
	Count      int    `json:"count"`
}

// RangeStats is the statistics view of a list of resolved days.
type RangeStats struct {
	Days            int              `json:"days"`
	HolidayDays     int              `json:"holiday_days"`
	NormalCount     int              `json:"normal_count"`
	SubstituteCount int              `json:"substitute_count"`
	NoServiceCount  int              `json:"no_service_count"`
	Routes          []RouteStats     `json:"routes"`
	Substitutes     []DriverCoverage `json:"substitutes"`
}

// Summarize computes statistics over days. Routes keep their first-seen order;
// substitutes are sorted by descending count, then name.
func Summarize(days []DailyDispatch) RangeStats {
	st := RangeStats{
		Days:        len(days),
		Routes:      []RouteStats{},
		Substitutes: []DriverCoverage{},
	}

	routePos := make(map[string]int)
	coverPos := make(map[string]int)
	for _, day := range days {
		holiday := false
		for _, r := range day.Routes {
			pos, ok := routePos[r.RouteID]
			if !ok {
				pos = len(st.Routes)
				routePos[r.RouteID] = pos
				st.Routes = append(st.Routes, RouteStats{RouteID: r.RouteID, RouteName: r.RouteName})
			}
			rs := &st.Routes[pos]

			switch r.Status {
			case StatusNormal:
				rs.NormalCount++
				st.NormalCount++
			case StatusSubstitute:
				rs.SubstituteCount++
				st.SubstituteCount++
				if r.Driver != nil {
					cp, ok := coverPos[r.Driver.DriverID]
					if !ok {
						cp = len(st.Substitutes)
						coverPos[r.Driver.DriverID] = cp
						st.Substitutes = append(st.Substitutes, DriverCoverage{
							DriverID:   r.Driver.DriverID,
							DriverName: r.Driver.DriverName,
						})
					}
					st.Substitutes[cp].Count++
				}
			case StatusNoService:
				rs.NoServiceCount++
				st.NoServiceCount++
			case StatusHoliday:
				rs.HolidayCount++
				holiday = true
			}
		}
		if holiday {
			st.HolidayDays++
		}
	}

	sort.SliceStable(st.Substitutes, func(i, j int) bool {
		a, b := st.Substitutes[i], st.Substitutes[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.DriverName < b.DriverName
	})
	return st
}

// datesBetween lists the calendar dates from start to end inclusive, at
// midnight UTC.
func datesBetween(start, end time.Time) []time.Time {
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	if to.Before(from) {
		return nil
	}

	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
