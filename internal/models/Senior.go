package models

import (
	"gorm.io/gorm"
)

// Senior is a passenger riding a route. BoardingOrder sets the pickup
// sequence and is unique per route.
type Senior struct {
	gorm.Model
	Name          string `json:"name" gorm:"size:100;not null"`
	RouteID       uint   `json:"route_id" gorm:"not null;index"`
	BoardingOrder int    `json:"boarding_order"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}
