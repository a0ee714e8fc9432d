package dispatch

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
)

// SundayLabel is the holiday name reported for the weekly non-working day.
const SundayLabel = "일요일"

// Fixed-date public holidays observed every year.
var (
	NewYearsDay   = &cal.Holiday{Name: "신정", Type: cal.ObservancePublic, Month: time.January, Day: 1, Func: cal.CalcDayOfMonth}
	MarchFirst    = &cal.Holiday{Name: "삼일절", Type: cal.ObservancePublic, Month: time.March, Day: 1, Func: cal.CalcDayOfMonth}
	ChildrensDay  = &cal.Holiday{Name: "어린이날", Type: cal.ObservancePublic, Month: time.May, Day: 5, Func: cal.CalcDayOfMonth}
	MemorialDay   = &cal.Holiday{Name: "현충일", Type: cal.ObservancePublic, Month: time.June, Day: 6, Func: cal.CalcDayOfMonth}
	LiberationDay = &cal.Holiday{Name: "광복절", Type: cal.ObservancePublic, Month: time.August, Day: 15, Func: cal.CalcDayOfMonth}
	FoundationDay = &cal.Holiday{Name: "개천절", Type: cal.ObservancePublic, Month: time.October, Day: 3, Func: cal.CalcDayOfMonth}
	HangulDay     = &cal.Holiday{Name: "한글날", Type: cal.ObservancePublic, Month: time.October, Day: 9, Func: cal.CalcDayOfMonth}
	ChristmasDay  = &cal.Holiday{Name: "성탄절", Type: cal.ObservancePublic, Month: time.December, Day: 25, Func: cal.CalcDayOfMonth}

	fixedHolidays = []*cal.Holiday{
		NewYearsDay,
		MarchFirst,
		ChildrensDay,
		MemorialDay,
		LiberationDay,
		FoundationDay,
		HangulDay,
		ChristmasDay,
	}
)

// datedHolidays holds lunar-calendar, substitute and election holidays, which
// cannot be derived from a month/day rule. It covers 2024 through 2026 only;
// for later years 설날, 추석 and 부처님오신날 must be added here or entered as
// custom holidays, otherwise they resolve as working days.
var datedHolidays = map[string]string{
	"2024-02-09": "설날 연휴",
	"2024-02-10": "설날",
	"2024-02-11": "설날 연휴",
	"2024-02-12": "대체공휴일",
	"2024-04-10": "국회의원 선거일",
	"2024-05-06": "대체공휴일",
	"2024-05-15": "부처님오신날",
	"2024-09-16": "추석 연휴",
	"2024-09-17": "추석",
	"2024-09-18": "추석 연휴",
	"2024-10-01": "국군의 날",

	"2025-01-27": "임시공휴일",
	"2025-01-28": "설날 연휴",
	"2025-01-29": "설날",
	"2025-01-30": "설날 연휴",
	"2025-03-03": "대체공휴일",
	"2025-05-06": "대체공휴일",
	"2025-06-03": "대통령 선거일",
	"2025-10-05": "추석 연휴",
	"2025-10-06": "추석",
	"2025-10-07": "추석 연휴",
	"2025-10-08": "대체공휴일",

	"2026-02-16": "설날 연휴",
	"2026-02-17": "설날",
	"2026-02-18": "설날 연휴",
	"2026-03-02": "대체공휴일",
	"2026-05-24": "부처님오신날",
	"2026-05-25": "대체공휴일",
	"2026-06-03": "전국동시지방선거일",
	"2026-08-17": "대체공휴일",
	"2026-09-24": "추석 연휴",
	"2026-09-25": "추석",
	"2026-09-26": "추석 연휴",
	"2026-10-05": "대체공휴일",
}

// HasDatedHolidays reports whether the built-in table lists the lunar and
// substitute holidays of year.
func HasDatedHolidays(year int) bool {
	prefix := strconv.Itoa(year) + "-"
	for d := range datedHolidays {
		if strings.HasPrefix(d, prefix) {
			return true
		}
	}
	return false
}

// Calendar answers the non-working-day predicate. A Calendar is immutable after
// construction and safe for concurrent use.
type Calendar struct {
	fixed *cal.BusinessCalendar
	dated map[string]string
}

// NewCalendar builds the default holiday table extended with extra entries.
// Extra entries win over the built-in names; entries with an unparsable date
// are skipped.
func NewCalendar(extra ...HolidayEntry) *Calendar {
	fixed := cal.NewBusinessCalendar()
	fixed.AddHoliday(fixedHolidays...)

	dated := make(map[string]string, len(datedHolidays)+len(extra))
	for d, name := range datedHolidays {
		dated[d] = name
	}
	for _, e := range extra {
		key, ok := normalizeDate(e.Date)
		if !ok {
			continue
		}
		name := e.HolidayName
		if name == "" {
			name = "휴일"
		}
		dated[key] = name
	}

	return &Calendar{fixed: fixed, dated: dated}
}

// IsNonWorkingDay reports whether no route operates on date, and why.
func (c *Calendar) IsNonWorkingDay(date time.Time) (bool, string) {
	if date.Weekday() == time.Sunday {
		return true, SundayLabel
	}

	if name, ok := c.dated[DateKey(date)]; ok {
		return true, name
	}

	// cal compares the wall-clock date, so normalise to noon UTC first.
	y, m, d := date.Date()
	if actual, _, h := c.fixed.IsHoliday(time.Date(y, m, d, 12, 0, 0, 0, time.UTC)); actual && h != nil {
		return true, h.Name
	}

	return false, ""
}

// Holidays lists every table entry of year in date order. Sundays are not listed.
func (c *Calendar) Holidays(year int) []HolidayEntry {
	byDate := make(map[string]string)
	for _, h := range fixedHolidays {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		byDate[DateKey(actual)] = h.Name
	}
	for d, name := range c.dated {
		if t, err := time.Parse(DateLayout, d); err == nil && t.Year() == year {
			byDate[d] = name
		}
	}

	out := make([]HolidayEntry, 0, len(byDate))
	for d, name := range byDate {
		out = append(out, HolidayEntry{Date: d, HolidayName: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// DateKey formats the wall-clock date of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// normalizeDate parses a date string and re-formats it, so "2025-3-9" style or
// garbage values never become index keys.
func normalizeDate(s string) (string, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", false
	}
	return DateKey(t), true
}
