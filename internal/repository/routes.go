package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"senior_dispatch/internal/dispatch"
	"senior_dispatch/internal/models"
)

// ChainSlot is one requested entry of a route's driver chain.
type ChainSlot struct {
	DriverID  uint
	VehicleID *uint
}

// RouteInput describes a new route. Geometry is WKB or nil.
type RouteInput struct {
	Name        string
	Type        string
	Description string
	Geometry    []byte
	Drivers     []ChainSlot
}

// RoutePatch holds optional route changes. A non-nil Drivers replaces the
// whole chain; ClearGeometry drops the stored path.
type RoutePatch struct {
	Name          *string
	Type          *string
	Description   *string
	Geometry      []byte
	ClearGeometry bool
	Drivers       *[]ChainSlot
}

func preloadChain(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Drivers", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Drivers.Driver").
		Preload("Drivers.Vehicle")
}

// ListRoutes returns every live route with its chain in priority order.
func ListRoutes(ctx context.Context, db *gorm.DB) ([]models.Route, error) {
	var routes []models.Route
	if err := preloadChain(db.WithContext(ctx)).Order("id").Find(&routes).Error; err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}

func GetRoute(ctx context.Context, db *gorm.DB, id uint) (*models.Route, error) {
	var route models.Route
	err := preloadChain(db.WithContext(ctx)).First(&route, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get route %d: %w", id, err)
	}
	return &route, nil
}

// CreateRoute validates and stores a route together with its driver chain.
func CreateRoute(ctx context.Context, db *gorm.DB, in RouteInput) (*models.Route, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: route name is required", ErrInvalidInput)
	}
	if !dispatch.RouteType(in.Type).Valid() {
		return nil, ErrInvalidRouteType
	}

	var routeID uint
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validateChain(tx, in.Drivers); err != nil {
			return err
		}

		route := models.Route{Name: name, Type: in.Type, Description: in.Description, Geometry: in.Geometry}
		if err := tx.Create(&route).Error; err != nil {
			return fmt.Errorf("create route: %w", err)
		}
		routeID = route.ID

		return writeChain(tx, route.ID, in.Drivers)
	})
	if err != nil {
		return nil, err
	}

	return GetRoute(ctx, db, routeID)
}

// UpdateRoute applies patch to route id inside one transaction.
func UpdateRoute(ctx context.Context, db *gorm.DB, id uint, patch RoutePatch) (*models.Route, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var route models.Route
		if err := tx.First(&route, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("update route %d: %w", id, err)
		}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return fmt.Errorf("%w: route name is required", ErrInvalidInput)
			}
			route.Name = name
		}
		if patch.Type != nil {
			if !dispatch.RouteType(*patch.Type).Valid() {
				return ErrInvalidRouteType
			}
			route.Type = *patch.Type
		}
		if patch.Description != nil {
			route.Description = *patch.Description
		}
		if patch.ClearGeometry {
			route.Geometry = nil
		} else if patch.Geometry != nil {
			route.Geometry = patch.Geometry
		}

		if err := tx.Save(&route).Error; err != nil {
			return fmt.Errorf("update route %d: %w", id, err)
		}

		if patch.Drivers == nil {
			return nil
		}
		if err := validateChain(tx, *patch.Drivers); err != nil {
			return err
		}
		if err := tx.Where("route_id = ?", id).Delete(&models.RouteDriver{}).Error; err != nil {
			return fmt.Errorf("update route %d: clear chain: %w", id, err)
		}
		return writeChain(tx, id, *patch.Drivers)
	})
	if err != nil {
		return nil, err
	}

	return GetRoute(ctx, db, id)
}

// DeleteRoute removes a route without seniors, along with its chain.
func DeleteRoute(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var route models.Route
		if err := tx.First(&route, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("delete route %d: %w", id, err)
		}

		var riders int64
		if err := tx.Model(&models.Senior{}).Where("route_id = ?", id).Count(&riders).Error; err != nil {
			return fmt.Errorf("delete route %d: count seniors: %w", id, err)
		}
		if riders > 0 {
			return ErrRouteInUse
		}

		if err := tx.Where("route_id = ?", id).Delete(&models.RouteDriver{}).Error; err != nil {
			return fmt.Errorf("delete route %d: delete chain: %w", id, err)
		}
		if err := tx.Delete(&route).Error; err != nil {
			return fmt.Errorf("delete route %d: %w", id, err)
		}
		return nil
	})
}

// validateChain rejects chains the resolver must never see: empty, repeating a
// driver, or pointing at missing or out-of-service vehicles.
func validateChain(tx *gorm.DB, slots []ChainSlot) error {
	if len(slots) == 0 {
		return ErrEmptyDriverChain
	}

	seen := make(map[uint]struct{}, len(slots))
	for i, s := range slots {
		if _, dup := seen[s.DriverID]; dup {
			return fmt.Errorf("slot %d: %w", i, ErrDuplicateDriver)
		}
		seen[s.DriverID] = struct{}{}

		var n int64
		if err := tx.Model(&models.Driver{}).Where("id = ?", s.DriverID).Count(&n).Error; err != nil {
			return fmt.Errorf("validate chain: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("slot %d: %w %d", i, ErrUnknownDriver, s.DriverID)
		}

		if s.VehicleID == nil {
			continue
		}
		var v models.Vehicle
		err := tx.Select("id", "in_service").First(&v, *s.VehicleID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("slot %d: %w %d", i, ErrUnknownVehicle, *s.VehicleID)
		}
		if err != nil {
			return fmt.Errorf("validate chain: %w", err)
		}
		if !v.InService {
			return fmt.Errorf("slot %d: %w %d", i, ErrVehicleOutOfService, *s.VehicleID)
		}
	}
	return nil
}

func writeChain(tx *gorm.DB, routeID uint, slots []ChainSlot) error {
	rows := make([]models.RouteDriver, 0, len(slots))
	for i, s := range slots {
		rows = append(rows, models.RouteDriver{
			RouteID:   routeID,
			Position:  i,
			DriverID:  s.DriverID,
			VehicleID: s.VehicleID,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("write chain for route %d: %w", routeID, err)
	}
	return nil
}
