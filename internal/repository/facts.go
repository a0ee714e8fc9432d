package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"senior_dispatch/internal/dispatch"
	"senior_dispatch/internal/models"
)

// LeaveInput is one leave request as delivered by the leave-management service.
type LeaveInput struct {
	ExternalID string
	UserName   string
	Date       string
	Status     string
	Duration   string
	Type       string
}

func (in LeaveInput) validate() error {
	if strings.TrimSpace(in.ExternalID) == "" {
		return fmt.Errorf("%w: external id is required", ErrInvalidLeave)
	}
	if strings.TrimSpace(in.UserName) == "" {
		return fmt.Errorf("%w: user name is required", ErrInvalidLeave)
	}
	if _, err := dispatch.ParseDate(in.Date); err != nil {
		return ErrInvalidDate
	}
	switch dispatch.LeaveStatus(in.Status) {
	case dispatch.LeaveApproved, dispatch.LeavePending, dispatch.LeaveRejected:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidLeave, in.Status)
	}
	switch dispatch.LeaveDuration(in.Duration) {
	case dispatch.DurationFullDay, dispatch.DurationHalfDayAM, dispatch.DurationHalfDayPM, dispatch.DurationUnused:
	default:
		return fmt.Errorf("%w: unknown duration %q", ErrInvalidLeave, in.Duration)
	}
	switch dispatch.LeaveType(in.Type) {
	case "", dispatch.LeaveRegular, dispatch.LeaveMandatory:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidLeave, in.Type)
	}
	return nil
}

// UpsertLeaveRequests stores a batch of leave requests keyed by ExternalID.
// The batch is all-or-nothing.
func UpsertLeaveRequests(ctx context.Context, db *gorm.DB, batch []LeaveInput) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	// Postgres refuses to upsert the same key twice in one statement, so a
	// repeated ExternalID keeps the slot of its first row and the values of its last.
	rows := make([]models.LeaveRequest, 0, len(batch))
	slot := make(map[string]int, len(batch))
	for i, in := range batch {
		if err := in.validate(); err != nil {
			return 0, fmt.Errorf("leave request #%d: %w", i+1, err)
		}
		typ := in.Type
		if typ == "" {
			typ = string(dispatch.LeaveRegular)
		}
		row := models.LeaveRequest{
			ExternalID: strings.TrimSpace(in.ExternalID),
			UserName:   strings.TrimSpace(in.UserName),
			Date:       in.Date,
			Status:     in.Status,
			Duration:   in.Duration,
			Type:       typ,
		}
		if j, dup := slot[row.ExternalID]; dup {
			rows[j] = row
			continue
		}
		slot[row.ExternalID] = len(rows)
		rows = append(rows, row)
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_name", "date", "status", "duration", "type", "updated_at"}),
	}).CreateInBatches(&rows, 200).Error
	if err != nil {
		return 0, fmt.Errorf("upsert leave requests: %w", err)
	}
	return len(rows), nil
}

// ListLeaveRequests returns leave requests dated within [start, end].
func ListLeaveRequests(ctx context.Context, db *gorm.DB, start, end string) ([]models.LeaveRequest, error) {
	var out []models.LeaveRequest
	err := db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date").Order("user_name").Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return out, nil
}

// RecordAbsence marks seniorID absent on date. Recording the same absence
// twice returns the existing row.
func RecordAbsence(ctx context.Context, db *gorm.DB, seniorID uint, date, reason string) (*models.SeniorAbsence, error) {
	if _, err := dispatch.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}

	var out models.SeniorAbsence
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Senior{}).Where("id = ?", seniorID).Count(&n).Error; err != nil {
			return fmt.Errorf("record absence: check senior: %w", err)
		}
		if n == 0 {
			return ErrUnknownSenior
		}

		err := tx.Where("senior_id = ? AND date = ?", seniorID, date).First(&out).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("record absence: %w", err)
		}

		out = models.SeniorAbsence{SeniorID: seniorID, Date: date, Reason: reason}
		if err := tx.Create(&out).Error; err != nil {
			return fmt.Errorf("record absence: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func DeleteAbsence(ctx context.Context, db *gorm.DB, seniorID uint, date string) error {
	res := db.WithContext(ctx).Where("senior_id = ? AND date = ?", seniorID, date).Delete(&models.SeniorAbsence{})
	if res.Error != nil {
		return fmt.Errorf("delete absence: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAbsences returns absences dated within [start, end].
func ListAbsences(ctx context.Context, db *gorm.DB, start, end string) ([]models.SeniorAbsence, error) {
	var out []models.SeniorAbsence
	err := db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", start, end).
		Order("date").Order("senior_id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return out, nil
}

// SaveHoliday adds or renames the custom holiday on date.
func SaveHoliday(ctx context.Context, db *gorm.DB, date, name string) (*models.Holiday, error) {
	if _, err := dispatch.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: holiday name is required", ErrInvalidInput)
	}

	h := models.Holiday{Date: date, Name: name}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&h).Error
	if err != nil {
		return nil, fmt.Errorf("save holiday %s: %w", date, err)
	}

	// The upsert may not report the id of an updated row.
	if err := db.WithContext(ctx).Where("date = ?", date).First(&h).Error; err != nil {
		return nil, fmt.Errorf("save holiday %s: reload: %w", date, err)
	}
	return &h, nil
}

func DeleteHoliday(ctx context.Context, db *gorm.DB, date string) error {
	res := db.WithContext(ctx).Where("date = ?", date).Delete(&models.Holiday{})
	if res.Error != nil {
		return fmt.Errorf("delete holiday %s: %w", date, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
