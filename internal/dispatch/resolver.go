package dispatch

import (
	"fmt"
	"time"
)

// Driver role labels and fixed reasons.
const (
	RolePrimary = "primary"

	ReasonAllOnLeave = "all assigned drivers on leave"
	ReasonNoDrivers  = "no drivers assigned"
)

// FallbackRole returns the role label of the n-th (1-based) fallback driver.
func FallbackRole(n int) string {
	return fmt.Sprintf("fallback-%d", n)
}

// Engine resolves dispatch outcomes. It holds no state besides its holiday
// calendar and worker limit, so one Engine may serve any number of goroutines.
type Engine struct {
	calendar *Calendar
	workers  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of dates ResolveRange resolves concurrently.
// Values below 1 mean sequential resolution.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// NewEngine returns an Engine using calendar. A nil calendar means the default
// holiday table.
func NewEngine(calendar *Calendar, opts ...Option) *Engine {
	if calendar == nil {
		calendar = NewCalendar()
	}
	e := &Engine{calendar: calendar, workers: 4}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calendar returns the engine's holiday calendar.
func (e *Engine) Calendar() *Calendar {
	return e.calendar
}

// ResolveDay resolves every route of snap for date.
func (e *Engine) ResolveDay(date time.Time, snap Snapshot) DailyDispatch {
	return e.resolveDay(date, snap.Routes, buildIndex(snap))
}

func (e *Engine) resolveDay(date time.Time, routes []Route, idx *factIndex) DailyDispatch {
	key := DateKey(date)
	holiday, _ := e.calendar.IsNonWorkingDay(date)

	out := DailyDispatch{
		Date:   key,
		Routes: make([]RouteDispatch, 0, len(routes)),
	}
	for _, r := range routes {
		if holiday {
			out.Routes = append(out.Routes, RouteDispatch{
				RouteID:    r.ID,
				RouteName:  r.Name,
				RouteType:  r.Type,
				Status:     StatusHoliday,
				Passengers: []Senior{},
			})
			continue
		}
		out.Routes = append(out.Routes, resolveRoute(key, r, idx))
	}
	return out
}

// resolveRoute walks the fallback chain in stored order and stops at the first
// available driver.
func resolveRoute(date string, r Route, idx *factIndex) RouteDispatch {
	rd := RouteDispatch{
		RouteID:    r.ID,
		RouteName:  r.Name,
		RouteType:  r.Type,
		Passengers: []Senior{},
	}

	if len(r.Drivers) == 0 {
		rd.Status = StatusNoService
		rd.Reason = ReasonNoDrivers
		return rd
	}

	for i, d := range r.Drivers {
		if idx.onLeave(date, d.DriverName) {
			continue
		}

		driver := d
		rd.Driver = &driver
		rd.Passengers = idx.passengers(date, r.ID)
		if i == 0 {
			rd.Status = StatusNormal
			rd.DriverRole = RolePrimary
			return rd
		}

		primary := r.Drivers[0]
		rd.Status = StatusSubstitute
		rd.DriverRole = FallbackRole(i)
		rd.OriginalMainDriver = &primary
		rd.Reason = fmt.Sprintf("%s on leave", primary.DriverName)
		return rd
	}

	rd.Status = StatusNoService
	rd.Reason = ReasonAllOnLeave
	return rd
}
