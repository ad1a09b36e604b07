package domain

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCanceled   BookingStatus = "canceled"
)

// BookingStatuses lists every status an admin may set, in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingConfirmed,
	BookingInProgress,
	BookingCompleted,
	BookingCanceled,
}

func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range BookingStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func BookingStatusList() string {
	out := make([]string, 0, len(BookingStatuses))
	for _, st := range BookingStatuses {
		out = append(out, string(st))
	}
	return strings.Join(out, ", ")
}

// Booking targets exactly one of MenuID or MealID. TotalPrice is always
// computed server side at booking time.
type Booking struct {
	ID              string        `json:"id"`
	ClientID        string        `json:"client_id"`
	MenuID          *string       `json:"menu_id"`
	MealID          *string       `json:"meal_id"`
	ExperienceID    *string       `json:"experience_id"`
	DateTime        time.Time     `json:"date_time"`
	Address         string        `json:"address"`
	GuestsCount     int           `json:"guests_count"`
	TotalPrice      float64       `json:"total_price"`
	SpecialRequests *string       `json:"special_requests"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
