package cars

// FilterOptions lists the distinct values the storefront offers as filters
type FilterOptions struct {
	CarTypes      []string `json:"carTypes"`
	Makes         []string `json:"makes"`
	FuelTypes     []string `json:"fuelTypes"`
	Transmissions []string `json:"transmissions"`
}

// AvailabilityResponse reports whether a car can currently be booked
type AvailabilityResponse struct {
	CarID     uint `json:"carId"`
	Available bool `json:"available"`
}

// Statistics summarises the fleet for the admin panel
type Statistics struct {
	TotalCars          int64            `json:"totalCars"`
	AvailableCars      int64            `json:"availableCars"`
	UnavailableCars    int64            `json:"unavailableCars"`
	AveragePricePerDay float64          `json:"averagePricePerDay"`
	CarsByType         map[string]int64 `json:"carsByType"`
}
