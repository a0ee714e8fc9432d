package dispatch

import (
	"reflect"
	"testing"
)

func routeA() Route {
	return Route{
		ID:   "A",
		Name: "Route A",
		Type: RouteTypePickup,
		Drivers: []RouteDriver{
			{DriverID: "d1", DriverName: "Kim", VehicleName: "Starex 1", VehicleCapacity: 11},
			{DriverID: "d2", DriverName: "Lee", VehicleName: "Starex 2", VehicleCapacity: 11},
		},
	}
}

func approved(name, date string) LeaveRequest {
	return LeaveRequest{UserName: name, Date: date, Status: LeaveApproved, Duration: DurationFullDay, Type: LeaveRegular}
}

func TestResolveDayPrimaryAvailable(t *testing.T) {
	e := NewEngine(nil)
	got := e.ResolveDay(day("2025-03-10"), Snapshot{Routes: []Route{routeA()}})

	if got.Date != "2025-03-10" {
		t.Fatalf("date = %q, want 2025-03-10", got.Date)
	}
	if len(got.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(got.Routes))
	}
	rd := got.Routes[0]
	if rd.Status != StatusNormal {
		t.Fatalf("status = %q, want %q", rd.Status, StatusNormal)
	}
	if rd.Driver == nil || rd.Driver.DriverName != "Kim" {
		t.Fatalf("driver = %+v, want Kim", rd.Driver)
	}
	if rd.DriverRole != RolePrimary {
		t.Errorf("role = %q, want %q", rd.DriverRole, RolePrimary)
	}
	if rd.Reason != "" || rd.OriginalMainDriver != nil {
		t.Errorf("normal dispatch carries substitution data: %+v", rd)
	}
}

func TestResolveDaySubstitute(t *testing.T) {
	e := NewEngine(nil)
	snap := Snapshot{
		Routes:        []Route{routeA()},
		LeaveRequests: []LeaveRequest{approved("Kim", "2025-03-10")},
	}

	rd := e.ResolveDay(day("2025-03-10"), snap).Routes[0]
	if rd.Status != StatusSubstitute {
		t.Fatalf("status = %q, want %q", rd.Status, StatusSubstitute)
	}
	if rd.Driver == nil || rd.Driver.DriverName != "Lee" {
		t.Fatalf("driver = %+v, want Lee", rd.Driver)
	}
	if rd.OriginalMainDriver == nil || rd.OriginalMainDriver.DriverName != "Kim" {
		t.Fatalf("original main driver = %+v, want Kim", rd.OriginalMainDriver)
	}
	if rd.DriverRole != "fallback-1" {
		t.Errorf("role = %q, want fallback-1", rd.DriverRole)
	}
	if rd.Reason != "Kim on leave" {
		t.Errorf("reason = %q, want %q", rd.Reason, "Kim on leave")
	}
}

func TestResolveDayAllDriversOnLeave(t *testing.T) {
	e := NewEngine(nil)
	snap := Snapshot{
		Routes:        []Route{routeA()},
		Seniors:       []Senior{{ID: "s1", Name: "Park", RouteID: "A", BoardingOrder: 1}},
		LeaveRequests: []LeaveRequest{approved("Kim", "2025-03-10"), approved("Lee", "2025-03-10")},
	}

	rd := e.ResolveDay(day("2025-03-10"), snap).Routes[0]
	if rd.Status != StatusNoService {
		t.Fatalf("status = %q, want %q", rd.Status, StatusNoService)
	}
	if rd.Driver != nil {
		t.Fatalf("driver = %+v, want nil", rd.Driver)
	}
	if rd.Reason != ReasonAllOnLeave {
		t.Errorf("reason = %q, want %q", rd.Reason, ReasonAllOnLeave)
	}
	if len(rd.Passengers) != 0 {
		t.Errorf("passengers = %v, want none", rd.Passengers)
	}
}

func TestResolveDayFallbackOrder(t *testing.T) {
	r := routeA()
	r.Drivers = append(r.Drivers, RouteDriver{DriverID: "d3", DriverName: "Choi"})
	e := NewEngine(nil)

	// Lee and Choi are both free; chain order picks Lee.
	rd := e.ResolveDay(day("2025-03-10"), Snapshot{
		Routes:        []Route{r},
		LeaveRequests: []LeaveRequest{approved("Kim", "2025-03-10")},
	}).Routes[0]
	if rd.Driver == nil || rd.Driver.DriverName != "Lee" {
		t.Fatalf("driver = %+v, want Lee", rd.Driver)
	}

	rd = e.ResolveDay(day("2025-03-10"), Snapshot{
		Routes:        []Route{r},
		LeaveRequests: []LeaveRequest{approved("Kim", "2025-03-10"), approved("Lee", "2025-03-10")},
	}).Routes[0]
	if rd.Driver == nil || rd.Driver.DriverName != "Choi" {
		t.Fatalf("driver = %+v, want Choi", rd.Driver)
	}
	if rd.DriverRole != "fallback-2" {
		t.Errorf("role = %q, want fallback-2", rd.DriverRole)
	}
	if rd.OriginalMainDriver == nil || rd.OriginalMainDriver.DriverName != "Kim" {
		t.Errorf("original main driver = %+v, want Kim", rd.OriginalMainDriver)
	}
}

func TestResolveDayLeaveFilters(t *testing.T) {
	tests := []struct {
		name    string
		leave   LeaveRequest
		wantSub bool
	}{
		{"approved full day", approved("Kim", "2025-03-10"), true},
		{"approved half day am", LeaveRequest{UserName: "Kim", Date: "2025-03-10", Status: LeaveApproved, Duration: DurationHalfDayAM}, true},
		{"approved half day pm", LeaveRequest{UserName: "Kim", Date: "2025-03-10", Status: LeaveApproved, Duration: DurationHalfDayPM, Type: LeaveMandatory}, true},
		{"approved but unused", LeaveRequest{UserName: "Kim", Date: "2025-03-10", Status: LeaveApproved, Duration: DurationUnused}, false},
		{"pending", LeaveRequest{UserName: "Kim", Date: "2025-03-10", Status: LeavePending, Duration: DurationFullDay}, false},
		{"rejected", LeaveRequest{UserName: "Kim", Date: "2025-03-10", Status: LeaveRejected, Duration: DurationFullDay}, false},
		{"other date", approved("Kim", "2025-03-11"), false},
		{"other person", approved("Kimberly", "2025-03-10"), false},
		{"malformed date", approved("Kim", "10/03/2025"), false},
		{"missing duration", LeaveRequest{UserName: "Kim", Date: "2025-03-10", Status: LeaveApproved}, false},
	}

	e := NewEngine(nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rd := e.ResolveDay(day("2025-03-10"), Snapshot{
				Routes:        []Route{routeA()},
				LeaveRequests: []LeaveRequest{tc.leave},
			}).Routes[0]

			want := StatusNormal
			if tc.wantSub {
				want = StatusSubstitute
			}
			if rd.Status != want {
				t.Fatalf("status = %q, want %q", rd.Status, want)
			}
		})
	}
}

func TestResolveDayHolidayPrecedence(t *testing.T) {
	e := NewEngine(nil)
	snap := Snapshot{
		Routes:        []Route{routeA(), {ID: "B", Name: "Route B", Drivers: []RouteDriver{{DriverName: "Jung"}}}},
		Seniors:       []Senior{{ID: "s1", Name: "Park", RouteID: "A", BoardingOrder: 1}},
		LeaveRequests: []LeaveRequest{approved("Kim", "2025-03-09"), approved("Lee", "2025-03-09")},
	}

	got := e.ResolveDay(day("2025-03-09"), snap)
	if len(got.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(got.Routes))
	}
	for _, rd := range got.Routes {
		if rd.Status != StatusHoliday {
			t.Errorf("route %s status = %q, want %q", rd.RouteID, rd.Status, StatusHoliday)
		}
		if rd.Driver != nil || len(rd.Passengers) != 0 || rd.Reason != "" {
			t.Errorf("holiday dispatch for %s carries data: %+v", rd.RouteID, rd)
		}
	}
}

func TestResolveDayPassengers(t *testing.T) {
	e := NewEngine(nil)
	snap := Snapshot{
		Routes: []Route{routeA()},
		Seniors: []Senior{
			{ID: "s3", Name: "Han", RouteID: "A", BoardingOrder: 3},
			{ID: "s1", Name: "Park", RouteID: "A", BoardingOrder: 1},
			{ID: "s2", Name: "Yoon", RouteID: "A", BoardingOrder: 2},
			{ID: "s4", Name: "Seo", RouteID: "A", BoardingOrder: 2},
			{ID: "s9", Name: "Other", RouteID: "B", BoardingOrder: 1},
			{ID: "s8", Name: "Orphan", RouteID: "missing", BoardingOrder: 1},
		},
		SeniorAbsences: []SeniorAbsence{
			{SeniorID: "s1", Date: "2025-03-10"},
			{SeniorID: "s2", Date: "bad-date"},
		},
	}

	names := func(ss []Senior) []string {
		out := []string{}
		for _, s := range ss {
			out = append(out, s.Name)
		}
		return out
	}

	got := names(e.ResolveDay(day("2025-03-10"), snap).Routes[0].Passengers)
	want := []string{"Yoon", "Seo", "Han"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("passengers on 2025-03-10 = %v, want %v", got, want)
	}

	got = names(e.ResolveDay(day("2025-03-11"), snap).Routes[0].Passengers)
	want = []string{"Park", "Yoon", "Seo", "Han"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("passengers on 2025-03-11 = %v, want %v", got, want)
	}
}

func TestResolveDayAbsenceKeepsStatus(t *testing.T) {
	e := NewEngine(nil)
	snap := Snapshot{
		Routes:         []Route{routeA()},
		Seniors:        []Senior{{ID: "s1", Name: "Park", RouteID: "A", BoardingOrder: 1}},
		SeniorAbsences: []SeniorAbsence{{SeniorID: "s1", Date: "2025-03-10"}},
	}

	rd := e.ResolveDay(day("2025-03-10"), snap).Routes[0]
	if rd.Status != StatusNormal {
		t.Fatalf("status = %q, want %q", rd.Status, StatusNormal)
	}
	if len(rd.Passengers) != 0 {
		t.Fatalf("passengers = %v, want none", rd.Passengers)
	}
}

func TestResolveDayEmptyChain(t *testing.T) {
	e := NewEngine(nil)
	snap := Snapshot{
		Routes:  []Route{{ID: "X", Name: "Broken"}},
		Seniors: []Senior{{ID: "s1", Name: "Park", RouteID: "X", BoardingOrder: 1}},
	}

	rd := e.ResolveDay(day("2025-03-10"), snap).Routes[0]
	if rd.Status != StatusNoService {
		t.Fatalf("status = %q, want %q", rd.Status, StatusNoService)
	}
	if rd.Reason != ReasonNoDrivers {
		t.Errorf("reason = %q, want %q", rd.Reason, ReasonNoDrivers)
	}
	if rd.Driver != nil || len(rd.Passengers) != 0 {
		t.Errorf("empty chain dispatch carries data: %+v", rd)
	}
}

func TestResolveDayRoutesIndependent(t *testing.T) {
	e := NewEngine(nil)
	b := Route{ID: "B", Name: "Route B", Type: RouteTypeDropoff, Drivers: []RouteDriver{
		{DriverID: "d2", DriverName: "Lee"},
		{DriverID: "d1", DriverName: "Kim"},
	}}
	snap := Snapshot{
		Routes:        []Route{routeA(), b},
		LeaveRequests: []LeaveRequest{approved("Kim", "2025-03-10")},
	}

	got := e.ResolveDay(day("2025-03-10"), snap)
	if got.Routes[0].RouteID != "A" || got.Routes[1].RouteID != "B" {
		t.Fatalf("route order = [%s %s], want [A B]", got.Routes[0].RouteID, got.Routes[1].RouteID)
	}
	if got.Routes[0].Status != StatusSubstitute {
		t.Errorf("route A status = %q, want %q", got.Routes[0].Status, StatusSubstitute)
	}
	if got.Routes[1].Status != StatusNormal || got.Routes[1].Driver.DriverName != "Lee" {
		t.Errorf("route B = %+v, want normal with Lee", got.Routes[1])
	}
	if got.Routes[1].RouteType != RouteTypeDropoff {
		t.Errorf("route B type = %q, want %q", got.Routes[1].RouteType, RouteTypeDropoff)
	}
}

func TestResolveDayDeterministic(t *testing.T) {
	e := NewEngine(nil)
	snap := Snapshot{
		Routes:         []Route{routeA()},
		Seniors:        []Senior{{ID: "s1", Name: "Park", RouteID: "A", BoardingOrder: 1}},
		LeaveRequests:  []LeaveRequest{approved("Kim", "2025-03-10")},
		SeniorAbsences: []SeniorAbsence{{SeniorID: "s1", Date: "2025-03-11"}},
	}

	a := e.ResolveDay(day("2025-03-10"), snap)
	b := e.ResolveDay(day("2025-03-10"), snap)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("ResolveDay not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestResolveDayDoesNotAliasSnapshot(t *testing.T) {
	e := NewEngine(nil)
	snap := Snapshot{Routes: []Route{routeA()}}

	rd := e.ResolveDay(day("2025-03-10"), snap).Routes[0]
	rd.Driver.DriverName = "changed"

	if snap.Routes[0].Drivers[0].DriverName != "Kim" {
		t.Fatal("result driver aliases the snapshot")
	}
}
