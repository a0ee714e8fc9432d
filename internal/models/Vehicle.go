// internal/models/vehicle.go
package models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	VehicleNo           string `json:"vehicle_no" gorm:"size:50;not null"`
	VehicleRegistration string `json:"vehicle_registration"`
	Capacity            int    `json:"capacity"` // seats, 0 = unspecified
	InService           bool   `json:"in_service" gorm:"default:true"`
}
