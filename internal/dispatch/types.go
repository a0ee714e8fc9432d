package dispatch

// DateLayout is the ISO calendar date format used for every date key.
const DateLayout = "2006-01-02"

// RouteType tells whether a route collects seniors or brings them home.
type RouteType string

const (
	RouteTypePickup  RouteType = "PICKUP"
	RouteTypeDropoff RouteType = "DROPOFF"
)

// Valid reports whether t is one of the known route types.
func (t RouteType) Valid() bool {
	return t == RouteTypePickup || t == RouteTypeDropoff
}

// RouteDriver is one slot of a route's fallback chain.
type RouteDriver struct {
	DriverID        string `json:"driver_id"`
	DriverName      string `json:"driver_name"`
	VehicleName     string `json:"vehicle_name"`
	VehicleCapacity int    `json:"vehicle_capacity"` // 0 = unspecified
}

// Route is a fixed transport line. Drivers[0] is the primary driver and the
// remaining entries are substitutes in priority order.
type Route struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Type    RouteType     `json:"type"`
	Drivers []RouteDriver `json:"drivers"`
}

// Senior is a passenger bound to a route.
type Senior struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RouteID       string `json:"route_id"`
	BoardingOrder int    `json:"boarding_order"`
}

type LeaveStatus string

const (
	LeaveApproved LeaveStatus = "approved"
	LeavePending  LeaveStatus = "pending"
	LeaveRejected LeaveStatus = "rejected"
)

type LeaveDuration string

const (
	DurationFullDay   LeaveDuration = "FULL_DAY"
	DurationHalfDayAM LeaveDuration = "HALF_DAY_AM"
	DurationHalfDayPM LeaveDuration = "HALF_DAY_PM"
	DurationUnused    LeaveDuration = "UNUSED"
)

type LeaveType string

const (
	LeaveRegular   LeaveType = "regular"
	LeaveMandatory LeaveType = "mandatory"
)

// LeaveRequest is a leave fact from the leave-management service. UserName is
// matched against RouteDriver.DriverName.
type LeaveRequest struct {
	UserName string        `json:"user_name"`
	Date     string        `json:"date"`
	Status   LeaveStatus   `json:"status"`
	Duration LeaveDuration `json:"duration"`
	Type     LeaveType     `json:"type"`
}

// Blocks reports whether the request makes its user unavailable for dispatch.
// Half-day leave blocks the whole day.
func (l LeaveRequest) Blocks() bool {
	return l.Status == LeaveApproved && l.Duration != DurationUnused && l.Duration != ""
}

// SeniorAbsence removes a senior from the passenger list of one date.
type SeniorAbsence struct {
	SeniorID string `json:"senior_id"`
	Date     string `json:"date"`
}

// HolidayEntry is a dated non-working day with its display label.
type HolidayEntry struct {
	Date        string `json:"date"`
	HolidayName string `json:"holiday_name"`
}

// Status is the per-route, per-day dispatch outcome.
type Status string

const (
	StatusNormal     Status = "normal"
	StatusSubstitute Status = "substitute"
	StatusNoService  Status = "no_service"
	StatusHoliday    Status = "holiday"
)

// Valid reports whether s is one of the four dispatch outcomes.
func (s Status) Valid() bool {
	switch s {
	case StatusNormal, StatusSubstitute, StatusNoService, StatusHoliday:
		return true
	}
	return false
}

// RouteDispatch is the resolved outcome of one route on one date.
type RouteDispatch struct {
	RouteID            string       `json:"route_id"`
	RouteName          string       `json:"route_name"`
	RouteType          RouteType    `json:"route_type"`
	Status             Status       `json:"status"`
	Driver             *RouteDriver `json:"driver"`
	DriverRole         string       `json:"driver_role,omitempty"`
	OriginalMainDriver *RouteDriver `json:"original_main_driver,omitempty"`
	Reason             string       `json:"reason,omitempty"`
	Passengers         []Senior     `json:"passengers"`
}

// DailyDispatch holds one RouteDispatch per configured route, in configuration order.
type DailyDispatch struct {
	Date   string          `json:"date"`
	Routes []RouteDispatch `json:"routes"`
}

// DispatchDaySummary is the per-day aggregate used for calendar cells.
// TotalRoutes == 0 means no route is configured yet.
type DispatchDaySummary struct {
	Date            string `json:"date"`
	TotalRoutes     int    `json:"total_routes"`
	NormalCount     int    `json:"normal_count"`
	SubstituteCount int    `json:"substitute_count"`
	NoServiceCount  int    `json:"no_service_count"`
	IsHoliday       bool   `json:"is_holiday"`
	HolidayName     string `json:"holiday_name,omitempty"`
}

// Snapshot is the already-fetched input of every engine call. The engine only
// reads it; callers must not mutate it while a call is running.
type Snapshot struct {
	Routes         []Route
	Seniors        []Senior
	LeaveRequests  []LeaveRequest
	SeniorAbsences []SeniorAbsence
}
