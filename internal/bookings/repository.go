package bookings

import (
	"context"
	"errors"
	"fmt"

	"drivehub/internal/cars"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uint) (*Booking, error)
	List(ctx context.Context, query ListQuery) ([]Booking, error)
	Statistics(ctx context.Context) (*Statistics, error)

	// Transition moves a booking to next and applies the car side effect
	// in the same transaction
	Transition(ctx context.Context, id uint, next Status, adminNotes string) (*Booking, Status, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("Car").First(booking, booking.ID).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Preload("Car").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]Booking, error) {
	var list []Booking
	db := r.db.WithContext(ctx).Preload("Car")

	if query.Email != "" {
		db = db.Where("LOWER(email) = LOWER(?)", query.Email)
	}
	if query.Status != nil {
		db = db.Where("booking_status = ?", *query.Status)
	}
	if query.Limit > 0 {
		db = db.Limit(query.Limit)
	}

	err := db.Order("created_at DESC").Order("id DESC").Find(&list).Error
	return list, err
}

func (r *repository) Statistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{ByStatus: map[Status]int64{}}
	db := r.db.WithContext(ctx)

	type statusCount struct {
		BookingStatus Status
		Count         int64
		Amount        float64
	}

	var rows []statusCount
	if err := db.Model(&Booking{}).
		Select("booking_status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount").
		Group("booking_status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}

	for _, row := range rows {
		stats.ByStatus[row.BookingStatus] = row.Count
		stats.TotalOrders += row.Count
		switch row.BookingStatus {
		case StatusApproved, StatusCompleted:
			stats.TotalRevenue += row.Amount
		case StatusPending:
			stats.PendingRevenue += row.Amount
		}
	}
	stats.PendingOrders = stats.ByStatus[StatusPending]
	stats.ApprovedOrders = stats.ByStatus[StatusApproved]
	stats.RejectedOrders = stats.ByStatus[StatusRejected]
	stats.CompletedOrders = stats.ByStatus[StatusCompleted]
	stats.CancelledOrders = stats.ByStatus[StatusCancelled]

	return stats, nil
}

func (r *repository) Transition(ctx context.Context, id uint, next Status, adminNotes string) (*Booking, Status, error) {
	var previous Status

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		previous = booking.BookingStatus
		if !previous.CanTransitionTo(next) {
			return ErrInvalidTransition
		}

		if available, touches := carAvailabilityAfter(previous, next); touches {
			var car cars.Car
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&car, booking.CarID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return cars.ErrCarNotFound
				}
				return fmt.Errorf("failed to lock car: %w", err)
			}
			if !available && !car.Available {
				return cars.ErrCarUnavailable
			}
			if err := tx.Model(&car).Update("available", available).Error; err != nil {
				return fmt.Errorf("failed to update car availability: %w", err)
			}
		}

		updates := map[string]interface{}{"booking_status": next}
		if adminNotes != "" {
			updates["admin_notes"] = adminNotes
		}
		return tx.Model(&booking).Updates(updates).Error
	})
	if err != nil {
		return nil, previous, err
	}

	booking, err := r.GetByID(ctx, id)
	return booking, previous, err
}

// carAvailabilityAfter returns the car's availability after a transition and
// whether the transition changes it at all
func carAvailabilityAfter(from, to Status) (available bool, touches bool) {
	switch {
	case to == StatusApproved:
		return false, true
	case from == StatusApproved && (to == StatusCompleted || to == StatusCancelled):
		return true, true
	}
	return false, false
}
