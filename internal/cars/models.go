package cars

import "time"

// Car is a rentable vehicle in the fleet
type Car struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Name                  string    `gorm:"not null" json:"name"`
	Make                  string    `gorm:"index;not null" json:"make"`
	Model                 string    `gorm:"not null" json:"model"`
	Year                  int       `json:"year"`
	CarType               string    `gorm:"index;not null" json:"carType"`
	Transmission          string    `json:"transmission"`
	FuelType              string    `gorm:"index" json:"fuelType"`
	SeatingCapacity       int       `json:"seatingCapacity"`
	PricePerDay           float64   `gorm:"not null" json:"pricePerDay"`
	Color                 string    `json:"color"`
	LicensePlate          string    `gorm:"uniqueIndex;not null" json:"licensePlate"`
	Mileage               int       `json:"mileage"`
	Description           string    `gorm:"type:text" json:"description"`
	ImageURL              string    `json:"imageUrl"`
	Available             bool      `gorm:"index;not null" json:"available"`
	AirConditioning       bool      `json:"airConditioning"`
	BluetoothConnectivity bool      `json:"bluetoothConnectivity"`
	GPSNavigation         bool      `json:"gpsNavigation"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func (Car) TableName() string {
	return "cars"
}

// ListQuery narrows a car listing. Zero values mean "no constraint".
type ListQuery struct {
	AvailableOnly   bool
	Keyword         string
	CarType         string
	Transmission    string
	FuelType        string
	MinPrice        *float64
	MaxPrice        *float64
	SeatingCapacity *int
}
