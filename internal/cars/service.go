package cars

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"drivehub/internal/shared/constants"
	"drivehub/pkg/cache"
	"drivehub/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrCarNotFound          = errors.New("car not found")
	ErrCarUnavailable       = errors.New("car is not available")
	ErrLicensePlateTaken    = errors.New("license plate already registered")
	ErrInvalidPriceRange    = errors.New("minimum price cannot exceed maximum price")
	ErrStorageNotConfigured = errors.New("image storage is not configured")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

// ImageStore uploads car images and returns their public URL
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// ImageUpload describes an incoming car image
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Service interface {
	ListAvailable(ctx context.Context) ([]Car, error)
	ListAll(ctx context.Context) ([]Car, error)
	GetByID(ctx context.Context, id uint) (*Car, error)
	GetAvailableByID(ctx context.Context, id uint) (*Car, error)
	Search(ctx context.Context, keyword string) ([]Car, error)
	Filter(ctx context.Context, query FilterQuery) ([]Car, error)
	ByType(ctx context.Context, carType string) ([]Car, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
	Availability(ctx context.Context, id uint) (*AvailabilityResponse, error)
	Statistics(ctx context.Context) (*Statistics, error)
	Reserve(ctx context.Context, id uint, userID string) (*Car, error)

	// Fleet management
	Create(ctx context.Context, req *CreateCarRequest) (*Car, error)
	Update(ctx context.Context, id uint, req *UpdateCarRequest) (*Car, error)
	Delete(ctx context.Context, id uint) error
	ToggleAvailability(ctx context.Context, id uint) (*Car, error)
	UpdatePricing(ctx context.Context, id uint, pricePerDay float64) (*Car, error)
	UpdateImage(ctx context.Context, id uint, upload ImageUpload) (*Car, error)

	// InvalidateCache drops every cached car listing
	InvalidateCache(ctx context.Context)
}

type service struct {
	repo         Repository
	cache        cache.Service
	images       ImageStore
	allowedTypes map[string]string
}

// NewService wires the car service. A nil cache disables caching and a nil
// image store disables uploads.
func NewService(repo Repository, cacheService cache.Service, images ImageStore, allowedImageTypes []string) Service {
	if cacheService == nil {
		cacheService = cache.Noop{}
	}
	allowed := make(map[string]string, len(allowedImageTypes))
	for _, t := range allowedImageTypes {
		allowed[strings.ToLower(t)] = imageExtension(t)
	}
	return &service{
		repo:         repo,
		cache:        cacheService,
		images:       images,
		allowedTypes: allowed,
	}
}

func (s *service) ListAvailable(ctx context.Context) ([]Car, error) {
	var cars []Car
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_CARS_AVAILABLE, constants.TTL_CARS_AVAILABLE,
		func() (interface{}, error) {
			return s.repo.List(ctx, ListQuery{AvailableOnly: true})
		}, &cars)
	if err != nil {
		return nil, fmt.Errorf("failed to list available cars: %w", err)
	}
	return nonNil(cars), nil
}

func (s *service) ListAll(ctx context.Context) ([]Car, error) {
	cars, err := s.repo.List(ctx, ListQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return nonNil(cars), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Car, error) {
	var car Car
	err := s.cache.GetOrSet(ctx, constants.BuildCarDetailKey(id), constants.TTL_CAR_DETAIL,
		func() (interface{}, error) {
			return s.repo.GetByID(ctx, id)
		}, &car)
	if err != nil {
		if errors.Is(err, ErrCarNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	return &car, nil
}

func (s *service) GetAvailableByID(ctx context.Context, id uint) (*Car, error) {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !car.Available {
		return nil, ErrCarUnavailable
	}
	return car, nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]Car, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.ListAvailable(ctx)
	}
	cars, err := s.repo.List(ctx, ListQuery{AvailableOnly: true, Keyword: keyword})
	if err != nil {
		return nil, fmt.Errorf("failed to search cars: %w", err)
	}
	return nonNil(cars), nil
}

func (s *service) Filter(ctx context.Context, query FilterQuery) ([]Car, error) {
	if query.MinPrice != nil && query.MaxPrice != nil && *query.MinPrice > *query.MaxPrice {
		return nil, ErrInvalidPriceRange
	}

	cars, err := s.repo.List(ctx, ListQuery{
		AvailableOnly:   true,
		CarType:         strings.TrimSpace(query.CarType),
		Transmission:    strings.TrimSpace(query.Transmission),
		FuelType:        strings.TrimSpace(query.FuelType),
		MinPrice:        query.MinPrice,
		MaxPrice:        query.MaxPrice,
		SeatingCapacity: query.SeatingCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter cars: %w", err)
	}
	return nonNil(cars), nil
}

func (s *service) ByType(ctx context.Context, carType string) ([]Car, error) {
	cars, err := s.repo.List(ctx, ListQuery{AvailableOnly: true, CarType: strings.TrimSpace(carType)})
	if err != nil {
		return nil, fmt.Errorf("failed to list cars by type: %w", err)
	}
	return nonNil(cars), nil
}

func (s *service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	var options FilterOptions
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_CARS_FILTER_OPTIONS, constants.TTL_CARS_FILTER_OPTIONS,
		func() (interface{}, error) {
			return s.loadFilterOptions(ctx)
		}, &options)
	if err != nil {
		return nil, fmt.Errorf("failed to load filter options: %w", err)
	}
	return &options, nil
}

func (s *service) loadFilterOptions(ctx context.Context) (*FilterOptions, error) {
	carTypes, err := s.repo.DistinctValues(ctx, "car_type")
	if err != nil {
		return nil, err
	}
	makes, err := s.repo.DistinctValues(ctx, "make")
	if err != nil {
		return nil, err
	}
	fuelTypes, err := s.repo.DistinctValues(ctx, "fuel_type")
	if err != nil {
		return nil, err
	}
	transmissions, err := s.repo.DistinctValues(ctx, "transmission")
	if err != nil {
		return nil, err
	}
	return &FilterOptions{
		CarTypes:      nonNilStrings(carTypes),
		Makes:         nonNilStrings(makes),
		FuelTypes:     nonNilStrings(fuelTypes),
		Transmissions: nonNilStrings(transmissions),
	}, nil
}

func (s *service) Availability(ctx context.Context, id uint) (*AvailabilityResponse, error) {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResponse{CarID: car.ID, Available: car.Available}, nil
}

func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_CARS_STATISTICS, constants.TTL_CARS_STATISTICS,
		func() (interface{}, error) {
			return s.repo.Statistics(ctx)
		}, &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to load car statistics: %w", err)
	}
	return &stats, nil
}

func (s *service) Reserve(ctx context.Context, id uint, userID string) (*Car, error) {
	car, err := s.repo.Reserve(ctx, id)
	if err != nil {
		return nil, err
	}
	s.InvalidateCache(ctx)
	logger.GetDefault().LogCarReserved(ctx, car.ID, userID)
	return car, nil
}

func (s *service) Create(ctx context.Context, req *CreateCarRequest) (*Car, error) {
	taken, err := s.repo.LicensePlateTaken(ctx, req.LicensePlate, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check license plate: %w", err)
	}
	if taken {
		return nil, ErrLicensePlateTaken
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	car := &Car{
		Name:                  strings.TrimSpace(req.Name),
		Make:                  strings.TrimSpace(req.Make),
		Model:                 strings.TrimSpace(req.Model),
		Year:                  req.Year,
		CarType:               strings.TrimSpace(req.CarType),
		Transmission:          strings.TrimSpace(req.Transmission),
		FuelType:              strings.TrimSpace(req.FuelType),
		SeatingCapacity:       req.SeatingCapacity,
		PricePerDay:           req.PricePerDay,
		Color:                 req.Color,
		LicensePlate:          strings.ToUpper(strings.TrimSpace(req.LicensePlate)),
		Mileage:               req.Mileage,
		Description:           req.Description,
		ImageURL:              req.ImageURL,
		Available:             available,
		AirConditioning:       req.AirConditioning,
		BluetoothConnectivity: req.BluetoothConnectivity,
		GPSNavigation:         req.GPSNavigation,
	}

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}
	s.InvalidateCache(ctx)
	return car, nil
}

func (s *service) Update(ctx context.Context, id uint, req *UpdateCarRequest) (*Car, error) {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LicensePlate != nil {
		plate := strings.ToUpper(strings.TrimSpace(*req.LicensePlate))
		taken, err := s.repo.LicensePlateTaken(ctx, plate, id)
		if err != nil {
			return nil, fmt.Errorf("failed to check license plate: %w", err)
		}
		if taken {
			return nil, ErrLicensePlateTaken
		}
		car.LicensePlate = plate
	}

	applyUpdate(car, req)

	if err := s.repo.Save(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to update car: %w", err)
	}
	s.InvalidateCache(ctx)
	return car, nil
}

func applyUpdate(car *Car, req *UpdateCarRequest) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setString(&car.Name, req.Name)
	setString(&car.Make, req.Make)
	setString(&car.Model, req.Model)
	setString(&car.CarType, req.CarType)
	setString(&car.Transmission, req.Transmission)
	setString(&car.FuelType, req.FuelType)
	setString(&car.Color, req.Color)
	setString(&car.Description, req.Description)
	setString(&car.ImageURL, req.ImageURL)

	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.SeatingCapacity != nil {
		car.SeatingCapacity = *req.SeatingCapacity
	}
	if req.PricePerDay != nil {
		car.PricePerDay = *req.PricePerDay
	}
	if req.Mileage != nil {
		car.Mileage = *req.Mileage
	}
	if req.Available != nil {
		car.Available = *req.Available
	}
	if req.AirConditioning != nil {
		car.AirConditioning = *req.AirConditioning
	}
	if req.BluetoothConnectivity != nil {
		car.BluetoothConnectivity = *req.BluetoothConnectivity
	}
	if req.GPSNavigation != nil {
		car.GPSNavigation = *req.GPSNavigation
	}
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateCache(ctx)
	return nil
}

func (s *service) ToggleAvailability(ctx context.Context, id uint) (*Car, error) {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	car.Available = !car.Available
	if err := s.repo.Save(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to toggle availability: %w", err)
	}
	s.InvalidateCache(ctx)
	return car, nil
}

func (s *service) UpdatePricing(ctx context.Context, id uint, pricePerDay float64) (*Car, error) {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	car.PricePerDay = pricePerDay
	if err := s.repo.Save(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to update pricing: %w", err)
	}
	s.InvalidateCache(ctx)
	return car, nil
}

func (s *service) UpdateImage(ctx context.Context, id uint, upload ImageUpload) (*Car, error) {
	if s.images == nil {
		return nil, ErrStorageNotConfigured
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(upload.ContentType, ";")[0]))
	ext, ok := s.allowedTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedImageType
	}
	if ext == "" {
		ext = strings.ToLower(path.Ext(upload.Filename))
	}

	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := ImageKey(car.ID, uuid.NewString(), ext)
	url, err := s.images.Upload(ctx, key, upload.Body, upload.Size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	car.ImageURL = url
	if err := s.repo.Save(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to save image url: %w", err)
	}
	s.InvalidateCache(ctx)
	return car, nil
}

// ImageKey builds the object key for a car image
func ImageKey(carID uint, id, ext string) string {
	return fmt.Sprintf("cars/%d/%s%s", carID, id, ext)
}

func (s *service) InvalidateCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.CACHE_KEY_CARS_ALL_PATTERN); err != nil {
		logger.GetDefault().WarnContext(ctx, "failed to invalidate car cache", "error", err)
	}
}

func imageExtension(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}

func nonNil(cars []Car) []Car {
	if cars == nil {
		return []Car{}
	}
	return cars
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
