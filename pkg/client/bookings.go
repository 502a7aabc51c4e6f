package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"drivehub/pkg/apiresult"
)

type BookingService struct {
	client *Client
}

func (s *BookingService) Submit(ctx context.Context, req BookingRequest) apiresult.Envelope[Booking] {
	return call[Booking](ctx, s.client, request{
		method: http.MethodPost,
		path:   "/api/forms/book",
		body:   req,
	}, "Failed to submit booking")
}

// History lists bookings made with email, newest first
func (s *BookingService) History(ctx context.Context, email string) apiresult.Envelope[[]Booking] {
	return call[[]Booking](ctx, s.client, request{
		method: http.MethodGet,
		path:   "/api/forms/user/" + url.PathEscape(strings.TrimSpace(email)),
	}, "Failed to load booking history")
}

func (s *BookingService) Recent(ctx context.Context) apiresult.Envelope[[]Booking] {
	return call[[]Booking](ctx, s.client, request{method: http.MethodGet, path: "/api/forms/recent"}, "Failed to load recent bookings")
}

// Cancel withdraws a pending booking
func (s *BookingService) Cancel(ctx context.Context, id uint) apiresult.Envelope[Booking] {
	return call[Booking](ctx, s.client, request{method: http.MethodPut, path: idPath("/api/forms/%d/cancel", id)}, "Failed to cancel booking")
}
