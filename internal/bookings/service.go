package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"drivehub/internal/cars"
	"drivehub/internal/notifications"
	"drivehub/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotBookingOwner   = errors.New("booking belongs to another customer")
)

const (
	DefaultRecentLimit = 10
	maxRecentLimit     = 50
)

// ValidationError reports form fields that passed binding but make no sense
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	sort.Strings(parts)
	return "invalid booking: " + strings.Join(parts, ", ")
}

// CarLookup is the part of the car service bookings depend on
type CarLookup interface {
	GetByID(ctx context.Context, id uint) (*cars.Car, error)
}

type Service interface {
	Submit(ctx context.Context, userID string, req *SubmitBookingRequest) (*BookingResponse, error)
	Recent(ctx context.Context, limit int) ([]BookingResponse, error)
	History(ctx context.Context, email string) ([]BookingResponse, error)
	Cancel(ctx context.Context, id uint, userID, email string) (*BookingResponse, error)
}

type service struct {
	repo      Repository
	cars      CarLookup
	publisher notifications.Publisher
}

func NewService(repo Repository, carLookup CarLookup, publisher notifications.Publisher) Service {
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &service{repo: repo, cars: carLookup, publisher: publisher}
}

func (s *service) Submit(ctx context.Context, userID string, req *SubmitBookingRequest) (*BookingResponse, error) {
	pickup, dropoff, err := parseWindow(req.PickupDateTime, req.ReturnDateTime)
	if err != nil {
		return nil, err
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	if !car.Available {
		return nil, cars.ErrCarUnavailable
	}

	days := RentalDays(pickup, dropoff)
	booking := &Booking{
		CarID:           car.ID,
		FullName:        strings.TrimSpace(req.FullName),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		PickupLocation:  strings.TrimSpace(req.PickupLocation),
		DropoffLocation: strings.TrimSpace(req.DropoffLocation),
		PickupDateTime:  pickup,
		ReturnDateTime:  dropoff,
		CarType:         req.CarType,
		Notes:           req.Notes,
		RentalDays:      days,
		TotalAmount:     TotalAmount(car.PricePerDay, days),
		BookingStatus:   StatusPending,
	}
	if booking.DropoffLocation == "" {
		booking.DropoffLocation = booking.PickupLocation
	}
	if booking.CarType == "" {
		booking.CarType = car.CarType
	}
	if id, err := uuid.Parse(userID); err == nil {
		booking.UserID = &id
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	logger.GetDefault().LogBookingCreated(ctx, booking.ID, booking.CarID, booking.Email)
	s.publish(notifications.EventBookingCreated, booking)

	resp := ToResponse(booking)
	return &resp, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]BookingResponse, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	list, err := s.repo.List(ctx, ListQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent bookings: %w", err)
	}
	return ToResponses(list), nil
}

func (s *service) History(ctx context.Context, email string) ([]BookingResponse, error) {
	list, err := s.repo.List(ctx, ListQuery{Email: strings.ToLower(strings.TrimSpace(email))})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", email, err)
	}
	return ToResponses(list), nil
}

// Cancel lets a customer withdraw a booking that is still pending
func (s *service) Cancel(ctx context.Context, id uint, userID, email string) (*BookingResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownedBy(existing, userID, email) {
		return nil, ErrNotBookingOwner
	}

	booking, previous, err := s.repo.Transition(ctx, id, StatusCancelled, "")
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogOrderTransition(ctx, booking.ID, previous.String(), booking.BookingStatus.String(), userID)
	s.publish(notifications.EventBookingCancelled, booking)

	resp := ToResponse(booking)
	return &resp, nil
}

func (s *service) publish(eventType notifications.EventType, b *Booking) {
	notifications.PublishAsync(s.publisher, notifications.NewBookingEvent(
		eventType, b.ID, b.CarID, b.Email, b.FullName, b.BookingStatus.String(), b.TotalAmount,
	))
}

func ownedBy(b *Booking, userID, email string) bool {
	if b.UserID != nil && b.UserID.String() == userID {
		return true
	}
	return email != "" && strings.EqualFold(b.Email, email)
}

// parseWindow parses both dates and checks their order
func parseWindow(rawPickup, rawReturn string) (time.Time, time.Time, error) {
	fields := map[string]string{}

	pickup, err := ParseDateTime(rawPickup)
	if err != nil {
		fields["pickupDateTime"] = "must use the format " + DateTimeLayout
	}
	dropoff, err := ParseDateTime(rawReturn)
	if err != nil {
		fields["returnDateTime"] = "must use the format " + DateTimeLayout
	}
	if len(fields) == 0 && !dropoff.After(pickup) {
		fields["returnDateTime"] = "must be after the pickup date and time"
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, &ValidationError{Fields: fields}
	}
	return pickup, dropoff, nil
}
