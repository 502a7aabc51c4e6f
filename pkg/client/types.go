package client

import (
	"net/url"
	"strconv"

	"drivehub/pkg/session"
)

// AuthResult is returned by login and signup
type AuthResult struct {
	User         session.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

type Car struct {
	ID                    uint    `json:"id"`
	Name                  string  `json:"name"`
	Make                  string  `json:"make"`
	Model                 string  `json:"model"`
	Year                  int     `json:"year"`
	CarType               string  `json:"carType"`
	Transmission          string  `json:"transmission"`
	FuelType              string  `json:"fuelType"`
	SeatingCapacity       int     `json:"seatingCapacity"`
	PricePerDay           float64 `json:"pricePerDay"`
	Color                 string  `json:"color"`
	LicensePlate          string  `json:"licensePlate"`
	Mileage               int     `json:"mileage"`
	Description           string  `json:"description"`
	ImageURL              string  `json:"imageUrl"`
	Available             bool    `json:"available"`
	AirConditioning       bool    `json:"airConditioning"`
	BluetoothConnectivity bool    `json:"bluetoothConnectivity"`
	GPSNavigation         bool    `json:"gpsNavigation"`
	CreatedAt             string  `json:"createdAt"`
	UpdatedAt             string  `json:"updatedAt"`
}

// CarInput is the payload for adding a car
type CarInput struct {
	Name                  string  `json:"name"`
	Make                  string  `json:"make"`
	Model                 string  `json:"model"`
	Year                  int     `json:"year"`
	CarType               string  `json:"carType"`
	Transmission          string  `json:"transmission"`
	FuelType              string  `json:"fuelType"`
	SeatingCapacity       int     `json:"seatingCapacity"`
	PricePerDay           float64 `json:"pricePerDay"`
	Color                 string  `json:"color,omitempty"`
	LicensePlate          string  `json:"licensePlate"`
	Mileage               int     `json:"mileage"`
	Description           string  `json:"description,omitempty"`
	ImageURL              string  `json:"imageUrl,omitempty"`
	Available             *bool   `json:"available,omitempty"`
	AirConditioning       bool    `json:"airConditioning"`
	BluetoothConnectivity bool    `json:"bluetoothConnectivity"`
	GPSNavigation         bool    `json:"gpsNavigation"`
}

// CarUpdate sends only the non-nil fields
type CarUpdate struct {
	Name            *string  `json:"name,omitempty"`
	Make            *string  `json:"make,omitempty"`
	Model           *string  `json:"model,omitempty"`
	Year            *int     `json:"year,omitempty"`
	CarType         *string  `json:"carType,omitempty"`
	Transmission    *string  `json:"transmission,omitempty"`
	FuelType        *string  `json:"fuelType,omitempty"`
	SeatingCapacity *int     `json:"seatingCapacity,omitempty"`
	PricePerDay     *float64 `json:"pricePerDay,omitempty"`
	Color           *string  `json:"color,omitempty"`
	LicensePlate    *string  `json:"licensePlate,omitempty"`
	Mileage         *int     `json:"mileage,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Available       *bool    `json:"available,omitempty"`
}

// CarFilter narrows /cars/filter. Empty fields are left out of the query.
type CarFilter struct {
	CarType         string
	Transmission    string
	FuelType        string
	MinPrice        *float64
	MaxPrice        *float64
	SeatingCapacity *int
}

func (f CarFilter) values() url.Values {
	v := url.Values{}
	if f.CarType != "" {
		v.Set("carType", f.CarType)
	}
	if f.Transmission != "" {
		v.Set("transmission", f.Transmission)
	}
	if f.FuelType != "" {
		v.Set("fuelType", f.FuelType)
	}
	if f.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.SeatingCapacity != nil {
		v.Set("seatingCapacity", strconv.Itoa(*f.SeatingCapacity))
	}
	return v
}

type FilterOptions struct {
	CarTypes      []string `json:"carTypes"`
	Makes         []string `json:"makes"`
	FuelTypes     []string `json:"fuelTypes"`
	Transmissions []string `json:"transmissions"`
}

type Availability struct {
	CarID     uint `json:"carId"`
	Available bool `json:"available"`
}

type CarStatistics struct {
	TotalCars          int64            `json:"totalCars"`
	AvailableCars      int64            `json:"availableCars"`
	UnavailableCars    int64            `json:"unavailableCars"`
	AveragePricePerDay float64          `json:"averagePricePerDay"`
	CarsByType         map[string]int64 `json:"carsByType"`
}

// BookingRequest is the booking form. Date-times use 2006-01-02T15:04 or
// 2006-01-02T15:04:05.
type BookingRequest struct {
	CarID           uint   `json:"carId"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation,omitempty"`
	PickupDateTime  string `json:"pickupDateTime"`
	ReturnDateTime  string `json:"returnDateTime"`
	CarType         string `json:"carType,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type Booking struct {
	ID              uint    `json:"id"`
	UserID          string  `json:"userId"`
	CarID           uint    `json:"carId"`
	Car             *Car    `json:"car"`
	FullName        string  `json:"fullName"`
	Email           string  `json:"email"`
	PhoneNumber     string  `json:"phoneNumber"`
	PickupLocation  string  `json:"pickupLocation"`
	DropoffLocation string  `json:"dropoffLocation"`
	PickupDateTime  string  `json:"pickupDateTime"`
	ReturnDateTime  string  `json:"returnDateTime"`
	CarType         string  `json:"carType"`
	Notes           string  `json:"notes"`
	RentalDays      int     `json:"rentalDays"`
	TotalAmount     float64 `json:"totalAmount"`
	BookingStatus   string  `json:"bookingStatus"`
	AdminNotes      string  `json:"adminNotes"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

type OrderStatistics struct {
	TotalOrders     int64            `json:"totalOrders"`
	PendingOrders   int64            `json:"pendingOrders"`
	ApprovedOrders  int64            `json:"approvedOrders"`
	RejectedOrders  int64            `json:"rejectedOrders"`
	CompletedOrders int64            `json:"completedOrders"`
	CancelledOrders int64            `json:"cancelledOrders"`
	TotalRevenue    float64          `json:"totalRevenue"`
	PendingRevenue  float64          `json:"pendingRevenue"`
	ByStatus        map[string]int64 `json:"byStatus"`
}

// Empty is the data type of calls that return nothing useful
type Empty struct{}
