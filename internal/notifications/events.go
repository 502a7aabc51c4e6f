package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType names a booking lifecycle change
type EventType string

const (
	EventBookingCreated   EventType = "created"
	EventBookingApproved  EventType = "approved"
	EventBookingRejected  EventType = "rejected"
	EventBookingCompleted EventType = "completed"
	EventBookingCancelled EventType = "cancelled"
)

// IsValid checks if the event type is known
func (t EventType) IsValid() bool {
	switch t {
	case EventBookingCreated, EventBookingApproved, EventBookingRejected,
		EventBookingCompleted, EventBookingCancelled:
		return true
	}
	return false
}

// BookingEvent is the message published for every booking state change
type BookingEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	BookingID   uint      `json:"bookingId"`
	CarID       uint      `json:"carId"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// NewBookingEvent stamps a new event with an id and the current time
func NewBookingEvent(eventType EventType, bookingID, carID uint, email, fullName, status string, totalAmount float64) BookingEvent {
	return BookingEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		BookingID:   bookingID,
		CarID:       carID,
		Email:       email,
		FullName:    fullName,
		Status:      status,
		TotalAmount: totalAmount,
		OccurredAt:  time.Now().UTC(),
	}
}

// RoutingKey is the topic routing key, e.g. booking.created
func (e BookingEvent) RoutingKey() string {
	return "booking." + string(e.Type)
}

// PartitionKey keeps all events of one booking on the same partition
func (e BookingEvent) PartitionKey() string {
	return fmt.Sprintf("booking-%d", e.BookingID)
}

func (e BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeBookingEvent parses and checks an event read from a broker
func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("failed to unmarshal booking event: %w", err)
	}
	if !event.Type.IsValid() {
		return BookingEvent{}, fmt.Errorf("unknown booking event type %q", event.Type)
	}
	if event.Email == "" {
		return BookingEvent{}, fmt.Errorf("booking event %s has no recipient", event.ID)
	}
	return event, nil
}
