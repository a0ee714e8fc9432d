package dispatch

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalendarIsNonWorkingDay(t *testing.T) {
	c := NewCalendar()

	tests := []struct {
		name        string
		date        string
		wantHoliday bool
		wantName    string
	}{
		{"sunday", "2025-03-09", true, SundayLabel},
		{"plain monday", "2025-03-10", false, ""},
		{"fixed holiday on a saturday", "2025-03-01", true, "삼일절"},
		{"substitute holiday", "2025-03-03", true, "대체공휴일"},
		{"lunar new year", "2025-01-29", true, "설날"},
		{"christmas", "2025-12-25", true, "성탄절"},
		{"sunday wins over the table", "2026-03-01", true, SundayLabel},
		{"saturday is a working day", "2025-03-08", false, ""},
		{"fixed rule beyond the dated table", "2031-10-09", true, "한글날"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotHoliday, gotName := c.IsNonWorkingDay(day(tc.date))
			if gotHoliday != tc.wantHoliday || gotName != tc.wantName {
				t.Errorf("IsNonWorkingDay(%s) = (%v, %q), want (%v, %q)",
					tc.date, gotHoliday, gotName, tc.wantHoliday, tc.wantName)
			}
		})
	}
}

func TestCalendarExtraEntries(t *testing.T) {
	c := NewCalendar(
		HolidayEntry{Date: "2025-03-12", HolidayName: "창립기념일"},
		HolidayEntry{Date: "2025-03-13"},
		HolidayEntry{Date: "not-a-date", HolidayName: "broken"},
	)

	if ok, name := c.IsNonWorkingDay(day("2025-03-12")); !ok || name != "창립기념일" {
		t.Fatalf("custom holiday = (%v, %q), want (true, 창립기념일)", ok, name)
	}
	if ok, name := c.IsNonWorkingDay(day("2025-03-13")); !ok || name != "휴일" {
		t.Fatalf("unnamed custom holiday = (%v, %q), want (true, 휴일)", ok, name)
	}

	// The default calendar must not see entries added to another instance.
	if ok, _ := NewCalendar().IsNonWorkingDay(day("2025-03-12")); ok {
		t.Fatal("custom entry leaked into a fresh calendar")
	}
}

func TestCalendarIgnoresTimeOfDayAndZone(t *testing.T) {
	c := NewCalendar()
	seoul := time.FixedZone("KST", 9*60*60)

	late := time.Date(2025, time.December, 25, 23, 30, 0, 0, seoul)
	if ok, name := c.IsNonWorkingDay(late); !ok || name != "성탄절" {
		t.Fatalf("IsNonWorkingDay(late christmas) = (%v, %q), want (true, 성탄절)", ok, name)
	}
}

func TestCalendarHolidays(t *testing.T) {
	got := NewCalendar().Holidays(2025)
	if len(got) == 0 {
		t.Fatal("expected holidays for 2025")
	}

	for i := 1; i < len(got); i++ {
		if got[i-1].Date >= got[i].Date {
			t.Fatalf("holidays not sorted: %s before %s", got[i-1].Date, got[i].Date)
		}
	}

	want := map[string]string{
		"2025-01-01": "신정",
		"2025-03-03": "대체공휴일",
		"2025-10-06": "추석",
		"2025-12-25": "성탄절",
	}
	found := make(map[string]string, len(got))
	for _, h := range got {
		found[h.Date] = h.HolidayName
		if h.Date[:4] != "2025" {
			t.Errorf("holiday %s listed for 2025", h.Date)
		}
	}
	for d, name := range want {
		if found[d] != name {
			t.Errorf("holiday %s = %q, want %q", d, found[d], name)
		}
	}
}

func TestHasDatedHolidays(t *testing.T) {
	for _, year := range []int{2024, 2025, 2026} {
		if !HasDatedHolidays(year) {
			t.Errorf("HasDatedHolidays(%d) = false, want true", year)
		}
	}
	if HasDatedHolidays(2027) {
		t.Error("HasDatedHolidays(2027) = true, want false")
	}
	// A custom entry does not make the built-in table complete.
	NewCalendar(HolidayEntry{Date: "2027-02-07", HolidayName: "설날"})
	if HasDatedHolidays(2027) {
		t.Error("custom entry leaked into the built-in table")
	}
}
