package orders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"drivehub/internal/bookings"
	"drivehub/internal/cars"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[uint]*bookings.Booking
	carFree  map[uint]bool
	stats    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: map[uint]*bookings.Booking{
			1: {ID: 1, CarID: 10, Email: "a@example.com", BookingStatus: bookings.StatusPending, TotalAmount: 90},
			2: {ID: 2, CarID: 10, Email: "b@example.com", BookingStatus: bookings.StatusPending, TotalAmount: 45},
			3: {ID: 3, CarID: 11, Email: "c@example.com", BookingStatus: bookings.StatusRejected},
		},
		carFree: map[uint]bool{10: true, 11: true},
	}
}

func (r *fakeRepo) Create(context.Context, *bookings.Booking) error { return nil }

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*bookings.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookings.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, q bookings.ListQuery) ([]bookings.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []bookings.Booking
	for id := uint(1); id <= uint(len(r.bookings)); id++ {
		b := r.bookings[id]
		if q.Status != nil && b.BookingStatus != *q.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) Statistics(context.Context) (*bookings.Statistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats++
	return &bookings.Statistics{TotalOrders: int64(len(r.bookings))}, nil
}

func (r *fakeRepo) Transition(_ context.Context, id uint, next bookings.Status, notes string) (*bookings.Booking, bookings.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, "", bookings.ErrBookingNotFound
	}
	previous := b.BookingStatus
	if !previous.CanTransitionTo(next) {
		return nil, previous, bookings.ErrInvalidTransition
	}
	switch next {
	case bookings.StatusApproved:
		if !r.carFree[b.CarID] {
			return nil, previous, cars.ErrCarUnavailable
		}
		r.carFree[b.CarID] = false
	case bookings.StatusCompleted:
		r.carFree[b.CarID] = true
	}
	b.BookingStatus = next
	b.AdminNotes = notes
	cp := *b
	return &cp, previous, nil
}

type countingCarCache struct{ calls int }

func (c *countingCarCache) InvalidateCache(context.Context) { c.calls++ }

func TestOrderLifecycle(t *testing.T) {
	repo := newFakeRepo()
	carCache := &countingCarCache{}
	svc := NewService(repo, nil, carCache, nil)
	ctx := context.Background()

	approved, err := svc.Approve(ctx, 1, "admin-1", "ID checked")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusApproved, approved.BookingStatus)
	assert.Equal(t, "ID checked", approved.AdminNotes)
	assert.False(t, repo.carFree[10])

	// the same car cannot go to a second customer
	_, err = svc.Approve(ctx, 2, "admin-1", "")
	assert.ErrorIs(t, err, cars.ErrCarUnavailable)

	completed, err := svc.Complete(ctx, 1, "admin-1", "")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusCompleted, completed.BookingStatus)
	assert.True(t, repo.carFree[10])
	assert.Equal(t, 2, carCache.calls)

	rejected, err := svc.Reject(ctx, 2, "admin-1", "Car in service")
	require.NoError(t, err)
	assert.Equal(t, bookings.StatusRejected, rejected.BookingStatus)
	assert.Equal(t, 2, carCache.calls)
}

func TestIllegalTransitions(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Complete(ctx, 1, "admin", "")
	assert.ErrorIs(t, err, bookings.ErrInvalidTransition)

	_, err = svc.Approve(ctx, 3, "admin", "")
	assert.ErrorIs(t, err, bookings.ErrInvalidTransition)

	_, err = svc.Approve(ctx, 99, "admin", "")
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
}

func TestByStatus(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil)

	pending, err := svc.Pending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	rejected, err := svc.ByStatus(context.Background(), "rejected")
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, uint(3), rejected[0].ID)

	_, err = svc.ByStatus(context.Background(), "lost")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestStatistics(t *testing.T) {
	repo := newFakeRepo()
	stats, err := NewService(repo, nil, nil, nil).Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.Equal(t, 1, repo.stats)
}

func newOrderRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewController(svc)
	r := gin.New()
	r.PUT("/api/orders/:id/approve", ctrl.ApproveOrder)
	r.PUT("/api/orders/:id/complete", ctrl.CompleteOrder)
	r.GET("/api/orders/status/:status", ctrl.GetOrdersByStatus)
	return r
}

func TestDecisionEndpoints(t *testing.T) {
	r := newOrderRouter(NewService(newFakeRepo(), nil, nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/orders/1/complete", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"errorCode":"INVALID_STATUS_TRANSITION"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/orders/1/approve", strings.NewReader(`{"adminNotes":"ok"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"adminNotes":"ok"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/orders/abc/approve", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/status/lost", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"details":{"status":`)
}
