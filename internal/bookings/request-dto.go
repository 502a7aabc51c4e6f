package bookings

// SubmitBookingRequest is the booking form payload
type SubmitBookingRequest struct {
	CarID           uint   `json:"carId" validate:"required,gt=0"`
	FullName        string `json:"fullName" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email,max=150"`
	PhoneNumber     string `json:"phoneNumber" validate:"required,min=7,max=30"`
	PickupLocation  string `json:"pickupLocation" validate:"required,max=200"`
	DropoffLocation string `json:"dropoffLocation" validate:"omitempty,max=200"`
	PickupDateTime  string `json:"pickupDateTime" validate:"required"`
	ReturnDateTime  string `json:"returnDateTime" validate:"required"`
	CarType         string `json:"carType" validate:"omitempty,max=50"`
	Notes           string `json:"notes" validate:"omitempty,max=1000"`
}
