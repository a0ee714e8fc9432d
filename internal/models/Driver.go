// internal/models/driver.go
package models

import (
	"gorm.io/gorm"
)

// Driver is a staff member who can be placed in a route's driver chain.
// Name is the join key against LeaveRequest.UserName, so it must be unique
// among live drivers.
type Driver struct {
	gorm.Model
	Name          string `json:"name" gorm:"size:100;not null;index"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}
