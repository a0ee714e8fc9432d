package models

import "time"

// SeniorAbsence marks a senior as not riding on one date.
type SeniorAbsence struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SeniorID  uint      `gorm:"not null;uniqueIndex:idx_absence_senior_date" json:"senior_id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_absence_senior_date;index" json:"date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
