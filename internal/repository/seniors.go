package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"senior_dispatch/internal/models"
)

// SeniorInput is the editable part of a senior. A BoardingOrder of 0 appends
// the senior after the last rider of the route.
type SeniorInput struct {
	Name          string
	RouteID       uint
	BoardingOrder int
	Phone         string
	Address       string
}

// ListSeniors returns seniors ordered by route and boarding order. A zero
// routeID lists every route.
func ListSeniors(ctx context.Context, db *gorm.DB, routeID uint) ([]models.Senior, error) {
	q := db.WithContext(ctx).Order("route_id").Order("boarding_order").Order("id")
	if routeID != 0 {
		q = q.Where("route_id = ?", routeID)
	}

	var seniors []models.Senior
	if err := q.Find(&seniors).Error; err != nil {
		return nil, fmt.Errorf("list seniors: %w", err)
	}
	return seniors, nil
}

func CreateSenior(ctx context.Context, db *gorm.DB, in SeniorInput) (*models.Senior, error) {
	var out models.Senior
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s, err := prepareSenior(tx, in, 0)
		if err != nil {
			return err
		}
		if err := tx.Create(&s).Error; err != nil {
			return fmt.Errorf("create senior: %w", err)
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func UpdateSenior(ctx context.Context, db *gorm.DB, id uint, in SeniorInput) (*models.Senior, error) {
	var out models.Senior
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Senior
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("update senior %d: %w", id, err)
		}

		s, err := prepareSenior(tx, in, id)
		if err != nil {
			return err
		}
		s.Model = existing.Model
		if err := tx.Save(&s).Error; err != nil {
			return fmt.Errorf("update senior %d: %w", id, err)
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSenior removes the senior and its absence records.
func DeleteSenior(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s models.Senior
		if err := tx.First(&s, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("delete senior %d: %w", id, err)
		}
		if err := tx.Where("senior_id = ?", id).Delete(&models.SeniorAbsence{}).Error; err != nil {
			return fmt.Errorf("delete senior %d: delete absences: %w", id, err)
		}
		if err := tx.Delete(&s).Error; err != nil {
			return fmt.Errorf("delete senior %d: %w", id, err)
		}
		return nil
	})
}

// prepareSenior validates in against the live route and the other riders of
// that route, skipping selfID.
func prepareSenior(tx *gorm.DB, in SeniorInput, selfID uint) (models.Senior, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Senior{}, fmt.Errorf("%w: senior name is required", ErrInvalidInput)
	}
	if in.BoardingOrder < 0 {
		return models.Senior{}, fmt.Errorf("%w: boarding order must not be negative", ErrInvalidInput)
	}

	var n int64
	if err := tx.Model(&models.Route{}).Where("id = ?", in.RouteID).Count(&n).Error; err != nil {
		return models.Senior{}, fmt.Errorf("check route: %w", err)
	}
	if n == 0 {
		return models.Senior{}, ErrUnknownRoute
	}

	order := in.BoardingOrder
	if order == 0 {
		var last int64
		if err := tx.Model(&models.Senior{}).
			Where("route_id = ? AND id <> ?", in.RouteID, selfID).
			Select("COALESCE(MAX(boarding_order), 0)").
			Row().Scan(&last); err != nil {
			return models.Senior{}, fmt.Errorf("next boarding order: %w", err)
		}
		order = int(last) + 1
	} else {
		if err := tx.Model(&models.Senior{}).
			Where("route_id = ? AND boarding_order = ? AND id <> ?", in.RouteID, order, selfID).
			Count(&n).Error; err != nil {
			return models.Senior{}, fmt.Errorf("check boarding order: %w", err)
		}
		if n > 0 {
			return models.Senior{}, ErrBoardingOrderTaken
		}
	}

	return models.Senior{
		Name:          name,
		RouteID:       in.RouteID,
		BoardingOrder: order,
		Phone:         in.Phone,
		Address:       in.Address,
	}, nil
}
