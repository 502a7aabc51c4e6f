package cars

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu     sync.Mutex
	nextID uint
	cars   map[uint]*Car
}

func newFakeRepo(cars ...Car) *fakeRepo {
	r := &fakeRepo{cars: map[uint]*Car{}}
	for i := range cars {
		c := cars[i]
		_ = r.Create(context.Background(), &c)
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, car *Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	car.ID = r.nextID
	cp := *car
	r.cars[car.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uint) (*Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok {
		return nil, ErrCarNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) Save(_ context.Context, car *Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *car
	r.cars[car.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cars[id]; !ok {
		return ErrCarNotFound
	}
	delete(r.cars, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, q ListQuery) ([]Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Car
	for _, c := range r.cars {
		if q.AvailableOnly && !c.Available {
			continue
		}
		if q.Keyword != "" {
			kw := strings.ToLower(q.Keyword)
			if !strings.Contains(strings.ToLower(c.Make+" "+c.Model+" "+c.CarType), kw) {
				continue
			}
		}
		if q.CarType != "" && !strings.EqualFold(c.CarType, q.CarType) {
			continue
		}
		if q.MinPrice != nil && c.PricePerDay < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && c.PricePerDay > *q.MaxPrice {
			continue
		}
		if q.SeatingCapacity != nil && c.SeatingCapacity < *q.SeatingCapacity {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) LicensePlateTaken(_ context.Context, plate string, excludeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.cars {
		if strings.EqualFold(c.LicensePlate, plate) && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) DistinctValues(_ context.Context, column string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	for _, c := range r.cars {
		switch column {
		case "car_type":
			seen[c.CarType] = true
		case "make":
			seen[c.Make] = true
		case "fuel_type":
			seen[c.FuelType] = true
		case "transmission":
			seen[c.Transmission] = true
		}
	}
	var out []string
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeRepo) Statistics(_ context.Context) (*Statistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &Statistics{CarsByType: map[string]int64{}}
	for _, c := range r.cars {
		s.TotalCars++
		if c.Available {
			s.AvailableCars++
		}
		s.CarsByType[c.CarType]++
	}
	s.UnavailableCars = s.TotalCars - s.AvailableCars
	return s, nil
}

func (r *fakeRepo) Reserve(_ context.Context, id uint) (*Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok {
		return nil, ErrCarNotFound
	}
	if !c.Available {
		return nil, ErrCarUnavailable
	}
	c.Available = false
	cp := *c
	return &cp, nil
}

type memoryImages struct {
	keys []string
}

func (m *memoryImages) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	m.keys = append(m.keys, key)
	return "http://images.local/" + key, nil
}

func fleet() *fakeRepo {
	return newFakeRepo(
		Car{Name: "Civic", Make: "Honda", Model: "Civic", CarType: "Sedan", FuelType: "Petrol", Transmission: "Automatic", SeatingCapacity: 5, PricePerDay: 45, LicensePlate: "AB-100", Available: true},
		Car{Name: "RAV4", Make: "Toyota", Model: "RAV4", CarType: "SUV", FuelType: "Hybrid", Transmission: "Automatic", SeatingCapacity: 5, PricePerDay: 70, LicensePlate: "AB-200", Available: true},
		Car{Name: "Sienna", Make: "Toyota", Model: "Sienna", CarType: "Van", FuelType: "Hybrid", Transmission: "Automatic", SeatingCapacity: 8, PricePerDay: 95, LicensePlate: "AB-300", Available: false},
	)
}

func TestListAvailableSkipsReservedCars(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)

	cars, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Len(t, cars, 2)
}

func TestSearchMatchesMakeModelAndType(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)

	cars, err := svc.Search(context.Background(), "toyota")
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "RAV4", cars[0].Model)

	cars, err = svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, cars, 2)
}

func TestFilter(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)
	ctx := context.Background()
	minPrice, maxPrice := 50.0, 100.0

	cars, err := svc.Filter(ctx, FilterQuery{MinPrice: &minPrice, MaxPrice: &maxPrice})
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "SUV", cars[0].CarType)

	low, high := 80.0, 20.0
	_, err = svc.Filter(ctx, FilterQuery{MinPrice: &low, MaxPrice: &high})
	assert.ErrorIs(t, err, ErrInvalidPriceRange)

	seats := 6
	cars, err = svc.Filter(ctx, FilterQuery{SeatingCapacity: &seats})
	require.NoError(t, err)
	assert.Empty(t, cars)
	assert.NotNil(t, cars)
}

func TestGetAvailableByID(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)

	_, err := svc.GetAvailableByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrCarUnavailable)

	_, err = svc.GetAvailableByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestReserveOnlyOnce(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)
	ctx := context.Background()

	car, err := svc.Reserve(ctx, 1, "user-1")
	require.NoError(t, err)
	assert.False(t, car.Available)

	_, err = svc.Reserve(ctx, 1, "user-2")
	assert.ErrorIs(t, err, ErrCarUnavailable)

	availability, err := svc.Availability(ctx, 1)
	require.NoError(t, err)
	assert.False(t, availability.Available)
}

func TestCreateRejectsDuplicatePlate(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)

	_, err := svc.Create(context.Background(), &CreateCarRequest{
		Name: "Golf", Make: "VW", Model: "Golf", Year: 2022, CarType: "Hatchback",
		Transmission: "Manual", FuelType: "Petrol", SeatingCapacity: 5, PricePerDay: 40,
		LicensePlate: "ab-100",
	})
	assert.ErrorIs(t, err, ErrLicensePlateTaken)
}

func TestCreateDefaultsToAvailable(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)

	car, err := svc.Create(context.Background(), &CreateCarRequest{
		Name: "Golf", Make: "VW", Model: "Golf", Year: 2022, CarType: "Hatchback",
		Transmission: "Manual", FuelType: "Petrol", SeatingCapacity: 5, PricePerDay: 40,
		LicensePlate: " xy-1 ",
	})
	require.NoError(t, err)
	assert.True(t, car.Available)
	assert.Equal(t, "XY-1", car.LicensePlate)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)
	price := 50.0
	color := "Blue"

	car, err := svc.Update(context.Background(), 1, &UpdateCarRequest{PricePerDay: &price, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, 50.0, car.PricePerDay)
	assert.Equal(t, "Blue", car.Color)
	assert.Equal(t, "Civic", car.Model)
}

func TestToggleAvailability(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)

	car, err := svc.ToggleAvailability(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, car.Available)
}

func TestFilterOptions(t *testing.T) {
	svc := NewService(fleet(), nil, nil, nil)

	options, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SUV", "Sedan", "Van"}, options.CarTypes)
	assert.Equal(t, []string{"Honda", "Toyota"}, options.Makes)
	assert.Equal(t, []string{"Hybrid", "Petrol"}, options.FuelTypes)
}

func TestUpdateImage(t *testing.T) {
	ctx := context.Background()
	allowed := []string{"image/jpeg", "image/png"}

	t.Run("no storage", func(t *testing.T) {
		svc := NewService(fleet(), nil, nil, allowed)
		_, err := svc.UpdateImage(ctx, 1, ImageUpload{ContentType: "image/png", Body: strings.NewReader("x")})
		assert.ErrorIs(t, err, ErrStorageNotConfigured)
	})

	t.Run("rejects other types", func(t *testing.T) {
		svc := NewService(fleet(), nil, &memoryImages{}, allowed)
		_, err := svc.UpdateImage(ctx, 1, ImageUpload{ContentType: "application/pdf", Body: strings.NewReader("x")})
		assert.ErrorIs(t, err, ErrUnsupportedImageType)
	})

	t.Run("stores under car prefix", func(t *testing.T) {
		images := &memoryImages{}
		svc := NewService(fleet(), nil, images, allowed)

		car, err := svc.UpdateImage(ctx, 2, ImageUpload{Filename: "rav4.jpeg", ContentType: "image/jpeg", Size: 4, Body: strings.NewReader("jpeg")})
		require.NoError(t, err)
		require.Len(t, images.keys, 1)
		assert.True(t, strings.HasPrefix(images.keys[0], "cars/2/"))
		assert.True(t, strings.HasSuffix(images.keys[0], ".jpg"))
		assert.Equal(t, "http://images.local/"+images.keys[0], car.ImageURL)
	})
}

func TestImageKey(t *testing.T) {
	assert.Equal(t, "cars/7/abc.png", ImageKey(7, "abc", ".png"))
}
