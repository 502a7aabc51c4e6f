package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"drivehub/pkg/apiresult"
)

// AdminService covers order handling and fleet management. The server
// only accepts ADMIN and MANAGER tokens.
type AdminService struct {
	client *Client
}

type decision struct {
	AdminNotes string `json:"adminNotes,omitempty"`
}

type pricing struct {
	PricePerDay float64 `json:"pricePerDay"`
}

// Orders

func (s *AdminService) PendingOrders(ctx context.Context) apiresult.Envelope[[]Booking] {
	return call[[]Booking](ctx, s.client, request{method: http.MethodGet, path: "/api/orders/pending"}, "Failed to load pending orders")
}

func (s *AdminService) AllOrders(ctx context.Context) apiresult.Envelope[[]Booking] {
	return call[[]Booking](ctx, s.client, request{method: http.MethodGet, path: "/api/orders/all"}, "Failed to load orders")
}

func (s *AdminService) OrdersByStatus(ctx context.Context, status string) apiresult.Envelope[[]Booking] {
	return call[[]Booking](ctx, s.client, request{
		method: http.MethodGet,
		path:   "/api/orders/status/" + url.PathEscape(strings.ToUpper(strings.TrimSpace(status))),
	}, "Failed to load orders")
}

func (s *AdminService) ApproveOrder(ctx context.Context, id uint, notes string) apiresult.Envelope[Booking] {
	return s.decide(ctx, id, "approve", notes, "Failed to approve order")
}

func (s *AdminService) RejectOrder(ctx context.Context, id uint, notes string) apiresult.Envelope[Booking] {
	return s.decide(ctx, id, "reject", notes, "Failed to reject order")
}

func (s *AdminService) CompleteOrder(ctx context.Context, id uint, notes string) apiresult.Envelope[Booking] {
	return s.decide(ctx, id, "complete", notes, "Failed to complete order")
}

func (s *AdminService) OrderStatistics(ctx context.Context) apiresult.Envelope[OrderStatistics] {
	return call[OrderStatistics](ctx, s.client, request{method: http.MethodGet, path: "/api/orders/statistics"}, "Failed to load order statistics")
}

func (s *AdminService) decide(ctx context.Context, id uint, action, notes, fallback string) apiresult.Envelope[Booking] {
	return call[Booking](ctx, s.client, request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/orders/%d/%s", id, action),
		body:   decision{AdminNotes: strings.TrimSpace(notes)},
	}, fallback)
}

// Fleet

func (s *AdminService) AllCars(ctx context.Context) apiresult.Envelope[[]Car] {
	return call[[]Car](ctx, s.client, request{method: http.MethodGet, path: "/api/cars/all"}, "Failed to load cars")
}

func (s *AdminService) AddCar(ctx context.Context, car CarInput) apiresult.Envelope[Car] {
	return call[Car](ctx, s.client, request{method: http.MethodPost, path: "/api/cars", body: car}, "Failed to add car")
}

func (s *AdminService) UpdateCar(ctx context.Context, id uint, update CarUpdate) apiresult.Envelope[Car] {
	return call[Car](ctx, s.client, request{method: http.MethodPut, path: idPath("/api/cars/%d", id), body: update}, "Failed to update car")
}

func (s *AdminService) DeleteCar(ctx context.Context, id uint) apiresult.Envelope[Empty] {
	return call[Empty](ctx, s.client, request{method: http.MethodDelete, path: idPath("/api/cars/%d", id)}, "Failed to delete car")
}

func (s *AdminService) ToggleAvailability(ctx context.Context, id uint) apiresult.Envelope[Car] {
	return call[Car](ctx, s.client, request{method: http.MethodPut, path: idPath("/api/admin/cars/%d/toggle-availability", id)}, "Failed to update availability")
}

func (s *AdminService) CarStatistics(ctx context.Context) apiresult.Envelope[CarStatistics] {
	return call[CarStatistics](ctx, s.client, request{method: http.MethodGet, path: "/api/admin/cars/statistics"}, "Failed to load statistics")
}

func (s *AdminService) UpdatePricing(ctx context.Context, id uint, pricePerDay float64) apiresult.Envelope[Car] {
	return call[Car](ctx, s.client, request{
		method: http.MethodPut,
		path:   idPath("/api/admin/cars/%d/pricing", id),
		body:   pricing{PricePerDay: pricePerDay},
	}, "Failed to update pricing")
}

// UploadCarImage sends the image as multipart field "image". The part
// content type is taken from the file extension.
func (s *AdminService) UploadCarImage(ctx context.Context, id uint, filename string, image io.Reader) apiresult.Envelope[Car] {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(filename)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return apiresult.Fail[Car](err, "Failed to upload image")
	}
	if _, err := io.Copy(part, image); err != nil {
		return apiresult.Fail[Car](fmt.Errorf("failed to read image: %w", err), "Failed to upload image")
	}
	if err := w.Close(); err != nil {
		return apiresult.Fail[Car](err, "Failed to upload image")
	}

	return call[Car](ctx, s.client, request{
		method: http.MethodPut,
		path:   idPath("/api/admin/cars/%d/image", id),
		body:   rawBody{contentType: w.FormDataContentType(), reader: &buf},
	}, "Failed to upload image")
}
