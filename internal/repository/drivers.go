package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"senior_dispatch/internal/models"
)

// DriverInput is the editable part of a driver.
type DriverInput struct {
	Name          string
	Phone         string
	LicenseNumber string
}

func ListDrivers(ctx context.Context, db *gorm.DB) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := db.WithContext(ctx).Order("name").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

// CreateDriver stores a new driver. Names must be unique because leave records
// are matched by name.
func CreateDriver(ctx context.Context, db *gorm.DB, in DriverInput) (*models.Driver, error) {
	name := strings.TrimSpace(in.Name)
	if err := ensureDriverNameFree(ctx, db, name, 0); err != nil {
		return nil, err
	}

	d := models.Driver{Name: name, Phone: in.Phone, LicenseNumber: in.LicenseNumber}
	if err := db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, fmt.Errorf("create driver: %w", err)
	}
	return &d, nil
}

func UpdateDriver(ctx context.Context, db *gorm.DB, id uint, in DriverInput) (*models.Driver, error) {
	var d models.Driver
	if err := first(ctx, db, &d, id); err != nil {
		return nil, fmt.Errorf("update driver %d: %w", id, err)
	}

	name := strings.TrimSpace(in.Name)
	if err := ensureDriverNameFree(ctx, db, name, id); err != nil {
		return nil, err
	}

	d.Name = name
	d.Phone = in.Phone
	d.LicenseNumber = in.LicenseNumber
	if err := db.WithContext(ctx).Save(&d).Error; err != nil {
		return nil, fmt.Errorf("update driver %d: %w", id, err)
	}
	return &d, nil
}

// DeleteDriver removes a driver that no route chain references; a chain must
// never lose its last driver silently.
func DeleteDriver(ctx context.Context, db *gorm.DB, id uint) error {
	var d models.Driver
	if err := first(ctx, db, &d, id); err != nil {
		return fmt.Errorf("delete driver %d: %w", id, err)
	}

	var refs int64
	if err := db.WithContext(ctx).Model(&models.RouteDriver{}).
		Joins("JOIN routes ON routes.id = route_drivers.route_id AND routes.deleted_at IS NULL").
		Where("route_drivers.driver_id = ?", id).
		Count(&refs).Error; err != nil {
		return fmt.Errorf("delete driver %d: count chain slots: %w", id, err)
	}
	if refs > 0 {
		return ErrDriverInUse
	}

	if err := db.WithContext(ctx).Delete(&d).Error; err != nil {
		return fmt.Errorf("delete driver %d: %w", id, err)
	}
	return nil
}

func ensureDriverNameFree(ctx context.Context, db *gorm.DB, name string, exceptID uint) error {
	if name == "" {
		return fmt.Errorf("%w: driver name is required", ErrInvalidInput)
	}

	var n int64
	q := db.WithContext(ctx).Model(&models.Driver{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("check driver name: %w", err)
	}
	if n > 0 {
		return ErrDriverNameTaken
	}
	return nil
}

// VehicleInput is the editable part of a vehicle.
type VehicleInput struct {
	VehicleNo           string
	VehicleRegistration string
	Capacity            int
	InService           *bool
}

func ListVehicles(ctx context.Context, db *gorm.DB) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := db.WithContext(ctx).Order("vehicle_no").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

func CreateVehicle(ctx context.Context, db *gorm.DB, in VehicleInput) (*models.Vehicle, error) {
	if in.Capacity < 0 {
		return nil, fmt.Errorf("%w: vehicle capacity must not be negative", ErrInvalidInput)
	}

	v := models.Vehicle{
		VehicleNo:           strings.TrimSpace(in.VehicleNo),
		VehicleRegistration: in.VehicleRegistration,
		Capacity:            in.Capacity,
		InService:           true,
	}
	outOfService := in.InService != nil && !*in.InService

	// gorm skips a false bool on insert and reads the column default back into
	// v, so the requested value is kept aside and written afterwards.
	if err := db.WithContext(ctx).Create(&v).Error; err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	if outOfService {
		if err := db.WithContext(ctx).Model(&v).Update("in_service", false).Error; err != nil {
			return nil, fmt.Errorf("create vehicle: clear in_service: %w", err)
		}
		v.InService = false
	}
	return &v, nil
}

func UpdateVehicle(ctx context.Context, db *gorm.DB, id uint, in VehicleInput) (*models.Vehicle, error) {
	if in.Capacity < 0 {
		return nil, fmt.Errorf("%w: vehicle capacity must not be negative", ErrInvalidInput)
	}

	var v models.Vehicle
	if err := first(ctx, db, &v, id); err != nil {
		return nil, fmt.Errorf("update vehicle %d: %w", id, err)
	}

	// A route chain must not keep a vehicle that is out of service.
	if in.InService != nil && !*in.InService && v.InService {
		if err := ensureVehicleUnassigned(ctx, db, id); err != nil {
			return nil, fmt.Errorf("update vehicle %d: %w", id, err)
		}
	}

	v.VehicleNo = strings.TrimSpace(in.VehicleNo)
	v.VehicleRegistration = in.VehicleRegistration
	v.Capacity = in.Capacity
	if in.InService != nil {
		v.InService = *in.InService
	}
	if err := db.WithContext(ctx).Save(&v).Error; err != nil {
		return nil, fmt.Errorf("update vehicle %d: %w", id, err)
	}
	return &v, nil
}

func DeleteVehicle(ctx context.Context, db *gorm.DB, id uint) error {
	var v models.Vehicle
	if err := first(ctx, db, &v, id); err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}

	if err := ensureVehicleUnassigned(ctx, db, id); err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}

	if err := db.WithContext(ctx).Delete(&v).Error; err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	return nil
}

func ensureVehicleUnassigned(ctx context.Context, db *gorm.DB, id uint) error {
	var refs int64
	if err := db.WithContext(ctx).Model(&models.RouteDriver{}).
		Joins("JOIN routes ON routes.id = route_drivers.route_id AND routes.deleted_at IS NULL").
		Where("route_drivers.vehicle_id = ?", id).
		Count(&refs).Error; err != nil {
		return fmt.Errorf("count chain slots: %w", err)
	}
	if refs > 0 {
		return ErrVehicleInUse
	}
	return nil
}

// first loads the record with id into dest, mapping gorm's not-found error to
// ErrNotFound.
func first(ctx context.Context, db *gorm.DB, dest any, id uint) error {
	err := db.WithContext(ctx).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
