package orders

import (
	"context"
	"errors"
	"fmt"

	"drivehub/internal/bookings"
	"drivehub/internal/notifications"
	"drivehub/internal/shared/constants"
	"drivehub/pkg/cache"
	"drivehub/pkg/logger"
)

var ErrUnknownStatus = errors.New("unknown booking status")

// CarCache drops cached car listings after availability changes
type CarCache interface {
	InvalidateCache(ctx context.Context)
}

type Service interface {
	Pending(ctx context.Context) ([]bookings.BookingResponse, error)
	All(ctx context.Context) ([]bookings.BookingResponse, error)
	ByStatus(ctx context.Context, status string) ([]bookings.BookingResponse, error)
	Approve(ctx context.Context, id uint, actorID, adminNotes string) (*bookings.BookingResponse, error)
	Reject(ctx context.Context, id uint, actorID, adminNotes string) (*bookings.BookingResponse, error)
	Complete(ctx context.Context, id uint, actorID, adminNotes string) (*bookings.BookingResponse, error)
	Statistics(ctx context.Context) (*bookings.Statistics, error)
}

type service struct {
	repo      bookings.Repository
	cache     cache.Service
	cars      CarCache
	publisher notifications.Publisher
}

func NewService(repo bookings.Repository, cacheService cache.Service, carCache CarCache, publisher notifications.Publisher) Service {
	if cacheService == nil {
		cacheService = cache.Noop{}
	}
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &service{repo: repo, cache: cacheService, cars: carCache, publisher: publisher}
}

func (s *service) Pending(ctx context.Context) ([]bookings.BookingResponse, error) {
	return s.ByStatus(ctx, string(bookings.StatusPending))
}

func (s *service) All(ctx context.Context) ([]bookings.BookingResponse, error) {
	list, err := s.repo.List(ctx, bookings.ListQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return bookings.ToResponses(list), nil
}

func (s *service) ByStatus(ctx context.Context, raw string) ([]bookings.BookingResponse, error) {
	status, ok := bookings.ParseStatus(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatus, raw)
	}
	list, err := s.repo.List(ctx, bookings.ListQuery{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s orders: %w", status, err)
	}
	return bookings.ToResponses(list), nil
}

func (s *service) Approve(ctx context.Context, id uint, actorID, adminNotes string) (*bookings.BookingResponse, error) {
	return s.transition(ctx, id, bookings.StatusApproved, actorID, adminNotes)
}

func (s *service) Reject(ctx context.Context, id uint, actorID, adminNotes string) (*bookings.BookingResponse, error) {
	return s.transition(ctx, id, bookings.StatusRejected, actorID, adminNotes)
}

func (s *service) Complete(ctx context.Context, id uint, actorID, adminNotes string) (*bookings.BookingResponse, error) {
	return s.transition(ctx, id, bookings.StatusCompleted, actorID, adminNotes)
}

func (s *service) Statistics(ctx context.Context) (*bookings.Statistics, error) {
	var stats bookings.Statistics
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_ORDER_STATISTICS, constants.TTL_ORDER_STATISTICS, func() (interface{}, error) {
		return s.repo.Statistics(ctx)
	}, &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to load order statistics: %w", err)
	}
	return &stats, nil
}

func (s *service) transition(ctx context.Context, id uint, next bookings.Status, actorID, adminNotes string) (*bookings.BookingResponse, error) {
	booking, previous, err := s.repo.Transition(ctx, id, next, adminNotes)
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogOrderTransition(ctx, booking.ID, previous.String(), next.String(), actorID)

	_ = s.cache.Delete(ctx, constants.CACHE_KEY_ORDER_STATISTICS)
	if s.cars != nil && (next == bookings.StatusApproved || next == bookings.StatusCompleted) {
		s.cars.InvalidateCache(ctx)
	}

	notifications.PublishAsync(s.publisher, notifications.NewBookingEvent(
		eventFor(next), booking.ID, booking.CarID, booking.Email, booking.FullName, next.String(), booking.TotalAmount,
	))

	resp := bookings.ToResponse(booking)
	return &resp, nil
}

func eventFor(status bookings.Status) notifications.EventType {
	switch status {
	case bookings.StatusApproved:
		return notifications.EventBookingApproved
	case bookings.StatusRejected:
		return notifications.EventBookingRejected
	case bookings.StatusCompleted:
		return notifications.EventBookingCompleted
	default:
		return notifications.EventBookingCancelled
	}
}
