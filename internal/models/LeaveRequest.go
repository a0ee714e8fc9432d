package models

import "time"

// LeaveRequest mirrors a request held by the leave-management service. Rows are
// upserted by ExternalID when the host syncs; this service never edits them.
type LeaveRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"size:64;not null;uniqueIndex" json:"external_id"`
	UserName   string    `gorm:"size:100;not null;index" json:"user_name"`
	Date       string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Status     string    `gorm:"size:20;not null" json:"status"`
	Duration   string    `gorm:"size:20;not null" json:"duration"`
	Type       string    `gorm:"size:20" json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
