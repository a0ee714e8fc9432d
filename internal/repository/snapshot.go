package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"senior_dispatch/internal/dispatch"
	"senior_dispatch/internal/models"
)

// LoadSnapshot reads the configuration and the facts dated within [start, end]
// into the engine's input form.
func LoadSnapshot(ctx context.Context, db *gorm.DB, start, end time.Time) (dispatch.Snapshot, error) {
	from, to := dispatch.DateKey(start), dispatch.DateKey(end)

	routes, err := ListRoutes(ctx, db)
	if err != nil {
		return dispatch.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var seniors []models.Senior
	if err := db.WithContext(ctx).Order("id").Find(&seniors).Error; err != nil {
		return dispatch.Snapshot{}, fmt.Errorf("load snapshot: seniors: %w", err)
	}

	leaves, err := ListLeaveRequests(ctx, db, from, to)
	if err != nil {
		return dispatch.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	absences, err := ListAbsences(ctx, db, from, to)
	if err != nil {
		return dispatch.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	snap := dispatch.Snapshot{
		Routes:         make([]dispatch.Route, 0, len(routes)),
		Seniors:        make([]dispatch.Senior, 0, len(seniors)),
		LeaveRequests:  make([]dispatch.LeaveRequest, 0, len(leaves)),
		SeniorAbsences: make([]dispatch.SeniorAbsence, 0, len(absences)),
	}
	for _, r := range routes {
		snap.Routes = append(snap.Routes, ToDispatchRoute(r))
	}
	for _, s := range seniors {
		snap.Seniors = append(snap.Seniors, dispatch.Senior{
			ID:            idString(s.ID),
			Name:          s.Name,
			RouteID:       idString(s.RouteID),
			BoardingOrder: s.BoardingOrder,
		})
	}
	for _, l := range leaves {
		snap.LeaveRequests = append(snap.LeaveRequests, dispatch.LeaveRequest{
			UserName: l.UserName,
			Date:     l.Date,
			Status:   dispatch.LeaveStatus(l.Status),
			Duration: dispatch.LeaveDuration(l.Duration),
			Type:     dispatch.LeaveType(l.Type),
		})
	}
	for _, a := range absences {
		snap.SeniorAbsences = append(snap.SeniorAbsences, dispatch.SeniorAbsence{
			SeniorID: idString(a.SeniorID),
			Date:     a.Date,
		})
	}

	return snap, nil
}

// LoadHolidayEntries returns every custom holiday.
func LoadHolidayEntries(ctx context.Context, db *gorm.DB) ([]dispatch.HolidayEntry, error) {
	var rows []models.Holiday
	if err := db.WithContext(ctx).Order("date").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}

	out := make([]dispatch.HolidayEntry, 0, len(rows))
	for _, h := range rows {
		out = append(out, dispatch.HolidayEntry{Date: h.Date, HolidayName: h.Name})
	}
	return out, nil
}

// ToDispatchRoute converts a stored route with a preloaded chain.
func ToDispatchRoute(r models.Route) dispatch.Route {
	out := dispatch.Route{
		ID:      idString(r.ID),
		Name:    r.Name,
		Type:    dispatch.RouteType(r.Type),
		Drivers: make([]dispatch.RouteDriver, 0, len(r.Drivers)),
	}
	for _, slot := range r.Drivers {
		d := dispatch.RouteDriver{
			DriverID:   idString(slot.DriverID),
			DriverName: slot.Driver.Name,
		}
		if slot.Vehicle != nil {
			d.VehicleName = slot.Vehicle.VehicleNo
			d.VehicleCapacity = slot.Vehicle.Capacity
		}
		out.Drivers = append(out.Drivers, d)
	}
	return out
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
