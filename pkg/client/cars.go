package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"drivehub/pkg/apiresult"
)

type CarService struct {
	client *Client
}

func (s *CarService) ListAvailable(ctx context.Context) apiresult.Envelope[[]Car] {
	return call[[]Car](ctx, s.client, request{method: http.MethodGet, path: "/api/cars/available"}, "Failed to load cars")
}

func (s *CarService) Get(ctx context.Context, id uint) apiresult.Envelope[Car] {
	return call[Car](ctx, s.client, request{method: http.MethodGet, path: idPath("/api/cars/%d", id)}, "Failed to load car")
}

// GetAvailable fails with 409 when the car is already taken
func (s *CarService) GetAvailable(ctx context.Context, id uint) apiresult.Envelope[Car] {
	return call[Car](ctx, s.client, request{method: http.MethodGet, path: idPath("/api/cars/available/%d", id)}, "Failed to load car")
}

func (s *CarService) Search(ctx context.Context, keyword string) apiresult.Envelope[[]Car] {
	return call[[]Car](ctx, s.client, request{
		method: http.MethodGet,
		path:   "/api/cars/search",
		query:  url.Values{"keyword": {strings.TrimSpace(keyword)}},
	}, "Search failed")
}

func (s *CarService) Filter(ctx context.Context, filter CarFilter) apiresult.Envelope[[]Car] {
	return call[[]Car](ctx, s.client, request{
		method: http.MethodGet,
		path:   "/api/cars/filter",
		query:  filter.values(),
	}, "Failed to filter cars")
}

func (s *CarService) ByType(ctx context.Context, carType string) apiresult.Envelope[[]Car] {
	return call[[]Car](ctx, s.client, request{
		method: http.MethodGet,
		path:   "/api/cars/type/" + url.PathEscape(carType),
	}, "Failed to load cars")
}

// Book reserves the car for the signed-in user
func (s *CarService) Book(ctx context.Context, id uint) apiresult.Envelope[Car] {
	return call[Car](ctx, s.client, request{method: http.MethodPost, path: idPath("/api/cars/%d/book", id)}, "Failed to book car")
}

func (s *CarService) FilterOptions(ctx context.Context) apiresult.Envelope[FilterOptions] {
	return call[FilterOptions](ctx, s.client, request{method: http.MethodGet, path: "/api/cars/filter-options"}, "Failed to load filter options")
}

func (s *CarService) Availability(ctx context.Context, id uint) apiresult.Envelope[Availability] {
	return call[Availability](ctx, s.client, request{method: http.MethodGet, path: idPath("/api/cars/%d/availability", id)}, "Failed to check availability")
}

func (s *CarService) Statistics(ctx context.Context) apiresult.Envelope[CarStatistics] {
	return call[CarStatistics](ctx, s.client, request{method: http.MethodGet, path: "/api/cars/statistics"}, "Failed to load statistics")
}
