package models

import (
	"gorm.io/gorm"
)

// Route is a transport line (pickup or dropoff) driven by an ordered chain of
// drivers. Drivers[0] is the primary driver.
type Route struct {
	gorm.Model

	Name        string `json:"name" gorm:"size:100;not null"`
	Type        string `json:"type" gorm:"size:10;not null"` // PICKUP | DROPOFF
	Description string `json:"description"`

	// Path stored as WKB (LINESTRING, SRID 4326); the API speaks GeoJSON.
	Geometry []byte `json:"-" gorm:"type:bytea"`

	Drivers []RouteDriver `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"drivers"`
	Seniors []Senior      `gorm:"foreignKey:RouteID" json:"seniors,omitempty"`
}

// RouteDriver is one slot of a route's chain. Position 0 is the primary slot;
// rows are replaced as a whole whenever the chain changes.
type RouteDriver struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	RouteID   uint     `gorm:"not null;index" json:"route_id"`
	Position  int      `gorm:"not null" json:"position"`
	DriverID  uint     `gorm:"not null;index" json:"driver_id"`
	Driver    Driver   `gorm:"foreignKey:DriverID" json:"driver"`
	VehicleID *uint    `json:"vehicle_id"`
	Vehicle   *Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
}
