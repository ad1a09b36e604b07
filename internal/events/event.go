package events

import (
	"time"

	"foodie/internal/domain"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is the wire shape of every booking lifecycle event.
type BookingEvent struct {
	Type         string               `json:"type"`
	BookingID    string               `json:"booking_id"`
	ClientID     string               `json:"client_id"`
	MenuID       *string              `json:"menu_id,omitempty"`
	MealID       *string              `json:"meal_id,omitempty"`
	ExperienceID *string              `json:"experience_id,omitempty"`
	Status       domain.BookingStatus `json:"status"`
	TotalPrice   float64              `json:"total_price"`
	DateTime     time.Time            `json:"date_time"`
	OccurredAt   time.Time            `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:         eventType,
		BookingID:    b.ID,
		ClientID:     b.ClientID,
		MenuID:       b.MenuID,
		MealID:       b.MealID,
		ExperienceID: b.ExperienceID,
		Status:       b.Status,
		TotalPrice:   b.TotalPrice,
		DateTime:     b.DateTime,
		OccurredAt:   at.UTC(),
	}
}
