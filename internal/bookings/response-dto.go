package bookings

import (
	"drivehub/internal/cars"
)

// BookingResponse is the wire shape of a booking
type BookingResponse struct {
	ID              uint      `json:"id"`
	UserID          string    `json:"userId,omitempty"`
	CarID           uint      `json:"carId"`
	Car             *cars.Car `json:"car,omitempty"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phoneNumber"`
	PickupLocation  string    `json:"pickupLocation"`
	DropoffLocation string    `json:"dropoffLocation"`
	PickupDateTime  string    `json:"pickupDateTime"`
	ReturnDateTime  string    `json:"returnDateTime"`
	CarType         string    `json:"carType"`
	Notes           string    `json:"notes"`
	RentalDays      int       `json:"rentalDays"`
	TotalAmount     float64   `json:"totalAmount"`
	BookingStatus   Status    `json:"bookingStatus"`
	AdminNotes      string    `json:"adminNotes"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// ToResponse converts a stored booking to its wire shape
func ToResponse(b *Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		CarID:           b.CarID,
		Car:             b.Car,
		FullName:        b.FullName,
		Email:           b.Email,
		PhoneNumber:     b.PhoneNumber,
		PickupLocation:  b.PickupLocation,
		DropoffLocation: b.DropoffLocation,
		PickupDateTime:  FormatDateTime(b.PickupDateTime),
		ReturnDateTime:  FormatDateTime(b.ReturnDateTime),
		CarType:         b.CarType,
		Notes:           b.Notes,
		RentalDays:      b.RentalDays,
		TotalAmount:     b.TotalAmount,
		BookingStatus:   b.BookingStatus,
		AdminNotes:      b.AdminNotes,
		CreatedAt:       FormatDateTime(b.CreatedAt),
		UpdatedAt:       FormatDateTime(b.UpdatedAt),
	}
	if b.UserID != nil {
		resp.UserID = b.UserID.String()
	}
	return resp
}

// ToResponses converts a slice of bookings
func ToResponses(list []Booking) []BookingResponse {
	out := make([]BookingResponse, len(list))
	for i := range list {
		out[i] = ToResponse(&list[i])
	}
	return out
}

// Statistics summarises orders for the admin dashboard
type Statistics struct {
	TotalOrders     int64            `json:"totalOrders"`
	PendingOrders   int64            `json:"pendingOrders"`
	ApprovedOrders  int64            `json:"approvedOrders"`
	RejectedOrders  int64            `json:"rejectedOrders"`
	CompletedOrders int64            `json:"completedOrders"`
	CancelledOrders int64            `json:"cancelledOrders"`
	TotalRevenue    float64          `json:"totalRevenue"`
	PendingRevenue  float64          `json:"pendingRevenue"`
	ByStatus        map[Status]int64 `json:"byStatus"`
}
