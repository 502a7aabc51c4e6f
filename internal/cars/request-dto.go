package cars

// CreateCarRequest is the payload for adding a car to the fleet
type CreateCarRequest struct {
	Name                  string  `json:"name" validate:"required,max=100"`
	Make                  string  `json:"make" validate:"required,max=50"`
	Model                 string  `json:"model" validate:"required,max=50"`
	Year                  int     `json:"year" validate:"required,gte=1950,lte=2100"`
	CarType               string  `json:"carType" validate:"required,max=30"`
	Transmission          string  `json:"transmission" validate:"required,max=30"`
	FuelType              string  `json:"fuelType" validate:"required,max=30"`
	SeatingCapacity       int     `json:"seatingCapacity" validate:"required,gte=1,lte=60"`
	PricePerDay           float64 `json:"pricePerDay" validate:"required,gt=0"`
	Color                 string  `json:"color" validate:"max=30"`
	LicensePlate          string  `json:"licensePlate" validate:"required,max=20"`
	Mileage               int     `json:"mileage" validate:"gte=0"`
	Description           string  `json:"description" validate:"max=2000"`
	ImageURL              string  `json:"imageUrl" validate:"omitempty,url"`
	Available             *bool   `json:"available"`
	AirConditioning       bool    `json:"airConditioning"`
	BluetoothConnectivity bool    `json:"bluetoothConnectivity"`
	GPSNavigation         bool    `json:"gpsNavigation"`
}

// UpdateCarRequest carries only the fields being changed
type UpdateCarRequest struct {
	Name                  *string  `json:"name" validate:"omitempty,max=100"`
	Make                  *string  `json:"make" validate:"omitempty,max=50"`
	Model                 *string  `json:"model" validate:"omitempty,max=50"`
	Year                  *int     `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	CarType               *string  `json:"carType" validate:"omitempty,max=30"`
	Transmission          *string  `json:"transmission" validate:"omitempty,max=30"`
	FuelType              *string  `json:"fuelType" validate:"omitempty,max=30"`
	SeatingCapacity       *int     `json:"seatingCapacity" validate:"omitempty,gte=1,lte=60"`
	PricePerDay           *float64 `json:"pricePerDay" validate:"omitempty,gt=0"`
	Color                 *string  `json:"color" validate:"omitempty,max=30"`
	LicensePlate          *string  `json:"licensePlate" validate:"omitempty,max=20"`
	Mileage               *int     `json:"mileage" validate:"omitempty,gte=0"`
	Description           *string  `json:"description" validate:"omitempty,max=2000"`
	ImageURL              *string  `json:"imageUrl" validate:"omitempty,url"`
	Available             *bool    `json:"available"`
	AirConditioning       *bool    `json:"airConditioning"`
	BluetoothConnectivity *bool    `json:"bluetoothConnectivity"`
	GPSNavigation         *bool    `json:"gpsNavigation"`
}

// FilterQuery is bound from the /cars/filter query string
type FilterQuery struct {
	CarType         string   `form:"carType"`
	Transmission    string   `form:"transmission"`
	FuelType        string   `form:"fuelType"`
	MinPrice        *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice        *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	SeatingCapacity *int     `form:"seatingCapacity" binding:"omitempty,gte=1"`
}

// PricingRequest updates the daily price of a car
type PricingRequest struct {
	PricePerDay float64 `json:"pricePerDay" validate:"required,gt=0"`
}
