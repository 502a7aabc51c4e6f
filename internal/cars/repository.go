package cars

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, car *Car) error
	GetByID(ctx context.Context, id uint) (*Car, error)
	Save(ctx context.Context, car *Car) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query ListQuery) ([]Car, error)
	LicensePlateTaken(ctx context.Context, plate string, excludeID uint) (bool, error)
	DistinctValues(ctx context.Context, column string) ([]string, error)
	Statistics(ctx context.Context) (*Statistics, error)

	// Reserve marks an available car unavailable under a row lock
	Reserve(ctx context.Context, id uint) (*Car, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, car *Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Car, error) {
	var car Car
	err := r.db.WithContext(ctx).First(&car, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}
	return &car, nil
}

func (r *repository) Save(ctx context.Context, car *Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Car{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCarNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Car, error) {
	db := r.db.WithContext(ctx).Model(&Car{})

	if query.AvailableOnly {
		db = db.Where("available = ?", true)
	}

	if kw := strings.TrimSpace(query.Keyword); kw != "" {
		term := "%" + strings.ToLower(kw) + "%"
		db = db.Where("LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(car_type) LIKE ? OR LOWER(name) LIKE ?",
			term, term, term, term)
	}

	if query.CarType != "" {
		db = db.Where("LOWER(car_type) = ?", strings.ToLower(query.CarType))
	}
	if query.Transmission != "" {
		db = db.Where("LOWER(transmission) = ?", strings.ToLower(query.Transmission))
	}
	if query.FuelType != "" {
		db = db.Where("LOWER(fuel_type) = ?", strings.ToLower(query.FuelType))
	}
	if query.MinPrice != nil {
		db = db.Where("price_per_day >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		db = db.Where("price_per_day <= ?", *query.MaxPrice)
	}
	if query.SeatingCapacity != nil {
		db = db.Where("seating_capacity >= ?", *query.SeatingCapacity)
	}

	var cars []Car
	if err := db.Order("price_per_day ASC, id ASC").Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *repository) LicensePlateTaken(ctx context.Context, plate string, excludeID uint) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Car{}).Where("UPPER(license_plate) = ?", strings.ToUpper(plate))
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var distinctColumns = map[string]bool{
	"car_type":     true,
	"make":         true,
	"fuel_type":    true,
	"transmission": true,
}

func (r *repository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !distinctColumns[column] {
		return nil, fmt.Errorf("column %q cannot be listed", column)
	}

	var values []string
	err := r.db.WithContext(ctx).Model(&Car{}).
		Where(column+" <> ''").
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	return values, err
}

func (r *repository) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{CarsByType: map[string]int64{}}
	db := r.db.WithContext(ctx)

	var totals struct {
		Total     int64
		Available int64
		AvgPrice  float64
	}
	err := db.Model(&Car{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE available) AS available, COALESCE(AVG(price_per_day), 0) AS avg_price").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cars: %w", err)
	}

	var byType []struct {
		CarType string
		Count   int64
	}
	err = db.Model(&Car{}).
		Select("car_type, COUNT(*) AS count").
		Group("car_type").
		Scan(&byType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group cars by type: %w", err)
	}

	stats.TotalCars = totals.Total
	stats.AvailableCars = totals.Available
	stats.UnavailableCars = totals.Total - totals.Available
	stats.AveragePricePerDay = totals.AvgPrice
	for _, row := range byType {
		stats.CarsByType[row.CarType] = row.Count
	}
	return stats, nil
}

func (r *repository) Reserve(ctx context.Context, id uint) (*Car, error) {
	var car Car
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&car, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCarNotFound
			}
			return fmt.Errorf("failed to lock car: %w", err)
		}

		if !car.Available {
			return ErrCarUnavailable
		}

		car.Available = false
		return tx.Model(&car).Update("available", false).Error
	})
	if err != nil {
		return nil, err
	}
	return &car, nil
}
