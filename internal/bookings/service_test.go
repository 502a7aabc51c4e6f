package bookings

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"drivehub/internal/cars"
	"drivehub/internal/notifications"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu       sync.Mutex
	nextID   uint
	bookings map[uint]*Booking
	cars     map[uint]*cars.Car
	clock    time.Time
}

func newFakeRepo(fleet ...cars.Car) *fakeRepo {
	r := &fakeRepo{
		bookings: map[uint]*Booking{},
		cars:     map[uint]*cars.Car{},
		clock:    time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
	for i := range fleet {
		c := fleet[i]
		r.cars[c.ID] = &c
	}
	return r
}

func (r *fakeRepo) GetCar(_ context.Context, id uint) (*cars.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok {
		return nil, cars.ErrCarNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.clock = r.clock.Add(time.Minute)
	b.ID = r.nextID
	b.CreatedAt = r.clock
	b.UpdatedAt = r.clock
	if c, ok := r.cars[b.CarID]; ok {
		cp := *c
		b.Car = &cp
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, q ListQuery) ([]Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Booking
	for _, b := range r.bookings {
		if q.Email != "" && b.Email != q.Email {
			continue
		}
		if q.Status != nil && b.BookingStatus != *q.Status {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeRepo) Statistics(context.Context) (*Statistics, error) {
	return &Statistics{ByStatus: map[Status]int64{}}, nil
}

func (r *fakeRepo) Transition(_ context.Context, id uint, next Status, notes string) (*Booking, Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, "", ErrBookingNotFound
	}
	previous := b.BookingStatus
	if !previous.CanTransitionTo(next) {
		return nil, previous, ErrInvalidTransition
	}
	if available, touches := carAvailabilityAfter(previous, next); touches {
		car := r.cars[b.CarID]
		if !available && !car.Available {
			return nil, previous, cars.ErrCarUnavailable
		}
		car.Available = available
	}
	b.BookingStatus = next
	if notes != "" {
		b.AdminNotes = notes
	}
	cp := *b
	return &cp, previous, nil
}

type carLookup struct{ repo *fakeRepo }

func (l carLookup) GetByID(ctx context.Context, id uint) (*cars.Car, error) {
	return l.repo.GetCar(ctx, id)
}

type recordingPublisher struct {
	events chan notifications.BookingEvent
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(chan notifications.BookingEvent, 16)}
}

func (p *recordingPublisher) Publish(_ context.Context, e notifications.BookingEvent) error {
	p.events <- e
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) next(t *testing.T) notifications.BookingEvent {
	t.Helper()
	select {
	case e := <-p.events:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no booking event published")
		return notifications.BookingEvent{}
	}
}

func fleet() []cars.Car {
	return []cars.Car{
		{ID: 1, Name: "Civic", CarType: "Sedan", PricePerDay: 45, Available: true},
		{ID: 2, Name: "Sienna", CarType: "Van", PricePerDay: 80, Available: false},
	}
}

func validRequest() *SubmitBookingRequest {
	return &SubmitBookingRequest{
		CarID:          1,
		FullName:       " Jane Doe ",
		Email:          "Jane@Example.com",
		PhoneNumber:    "+1 555 0100",
		PickupLocation: "Airport",
		PickupDateTime: "2024-01-15T10:00",
		ReturnDateTime: "2024-01-17T09:00:00",
	}
}

func newTestService() (Service, *fakeRepo, *recordingPublisher) {
	repo := newFakeRepo(fleet()...)
	pub := newRecordingPublisher()
	return NewService(repo, carLookup{repo}, pub), repo, pub
}

func TestSubmitComputesRentalAndDefaults(t *testing.T) {
	svc, _, pub := newTestService()
	userID := uuid.New()

	resp, err := svc.Submit(context.Background(), userID.String(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.RentalDays)
	assert.Equal(t, 90.0, resp.TotalAmount)
	assert.Equal(t, StatusPending, resp.BookingStatus)
	assert.Equal(t, "Airport", resp.DropoffLocation)
	assert.Equal(t, "Sedan", resp.CarType)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, "2024-01-15T10:00:00", resp.PickupDateTime)
	assert.Equal(t, userID.String(), resp.UserID)

	event := pub.next(t)
	assert.Equal(t, notifications.EventBookingCreated, event.Type)
	assert.Equal(t, resp.ID, event.BookingID)
	assert.Equal(t, 90.0, event.TotalAmount)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newTestService()

	req := validRequest()
	req.PickupDateTime = "tomorrow"
	_, err := svc.Submit(context.Background(), "", req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "pickupDateTime")

	req = validRequest()
	req.ReturnDateTime = "2024-01-14T10:00:00"
	_, err = svc.Submit(context.Background(), "", req)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be after the pickup date and time", verr.Fields["returnDateTime"])
}

func TestSubmitRejectsMissingOrTakenCars(t *testing.T) {
	svc, _, _ := newTestService()

	req := validRequest()
	req.CarID = 99
	_, err := svc.Submit(context.Background(), "", req)
	assert.ErrorIs(t, err, cars.ErrCarNotFound)

	req.CarID = 2
	_, err = svc.Submit(context.Background(), "", req)
	assert.ErrorIs(t, err, cars.ErrCarUnavailable)
}

func TestRecentAndHistory(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		req := validRequest()
		if i%2 == 0 {
			req.Email = "other@example.com"
		}
		_, err := svc.Submit(ctx, "", req)
		require.NoError(t, err)
	}

	recent, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, DefaultRecentLimit)
	assert.Equal(t, uint(12), recent[0].ID)

	history, err := svc.History(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Len(t, history, 6)
}

func TestCancel(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()
	owner := uuid.New().String()

	created, err := svc.Submit(ctx, owner, validRequest())
	require.NoError(t, err)
	pub.next(t)

	_, err = svc.Cancel(ctx, created.ID, uuid.New().String(), "stranger@example.com")
	assert.ErrorIs(t, err, ErrNotBookingOwner)

	cancelled, err := svc.Cancel(ctx, created.ID, owner, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.BookingStatus)
	assert.Equal(t, notifications.EventBookingCancelled, pub.next(t).Type)

	_, err = svc.Cancel(ctx, created.ID, owner, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.Cancel(ctx, 404, owner, "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
