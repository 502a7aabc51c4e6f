package bookings

import (
	"time"

	"drivehub/internal/cars"

	"github.com/google/uuid"
)

// Booking is a rental request submitted through the booking form
type Booking struct {
	ID              uint       `gorm:"primaryKey"`
	UserID          *uuid.UUID `gorm:"type:uuid;index"`
	CarID           uint       `gorm:"index;not null"`
	Car             *cars.Car  `gorm:"foreignKey:CarID;constraint:OnDelete:RESTRICT;"`
	FullName        string     `gorm:"size:100;not null"`
	Email           string     `gorm:"size:150;index;not null"`
	PhoneNumber     string     `gorm:"size:30"`
	PickupLocation  string     `gorm:"size:200;not null"`
	DropoffLocation string     `gorm:"size:200"`
	PickupDateTime  time.Time  `gorm:"not null"`
	ReturnDateTime  time.Time  `gorm:"not null"`
	CarType         string     `gorm:"size:50"`
	Notes           string     `gorm:"type:text"`
	RentalDays      int        `gorm:"not null;check:rental_days >= 1"`
	TotalAmount     float64    `gorm:"type:decimal(10,2);not null"`
	BookingStatus   Status     `gorm:"type:varchar(20);index;not null;default:'PENDING';check:booking_status IN ('PENDING','APPROVED','REJECTED','COMPLETED','CANCELLED')"`
	AdminNotes      string     `gorm:"type:text"`
	CreatedAt       time.Time  `gorm:"index"`
	UpdatedAt       time.Time
}

func (Booking) TableName() string {
	return "bookings"
}

// ListQuery narrows booking listings
type ListQuery struct {
	Email  string
	Status *Status
	Limit  int
}
