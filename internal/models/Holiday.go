package models

import "time"

// Holiday is an administrator-defined non-working day added on top of the
// built-in public holiday table.
type Holiday struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex" json:"date"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
