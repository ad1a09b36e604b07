package domain

import (
	"math"
	"time"
)

type MenuStatus string

const (
	MenuActive   MenuStatus = "active"
	MenuInactive MenuStatus = "inactive"
)

// Menu is a bookable offering under an Experience, bound to a guest-count range.
type Menu struct {
	ID             string     `json:"id"`
	ExperienceID   string     `json:"experience_id" validate:"required"`
	Name           string     `json:"name" validate:"required"`
	Description    string     `json:"description,omitempty"`
	BasePrice      float64    `json:"base_price" validate:"gte=0"`
	PricePerPerson float64    `json:"price_per_person" validate:"gte=0"`
	GuestMin       int        `json:"guest_min" validate:"gte=1"`
	GuestMax       int        `json:"guest_max" validate:"gtefield=GuestMin"`
	DietaryTags    []string   `json:"dietary_tags"`
	ImageURL       string     `json:"image_url,omitempty"`
	Status         MenuStatus `json:"status" validate:"oneof=active inactive"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (m *Menu) IsBookable() bool {
	return m.Status == MenuActive
}

// AcceptsGuests reports whether guests falls inside [GuestMin, GuestMax].
func (m *Menu) AcceptsGuests(guests int) bool {
	return guests >= m.GuestMin && guests <= m.GuestMax
}

// Quote is base_price + price_per_person * guests, rounded to cents.
func (m *Menu) Quote(guests int) float64 {
	return roundCents(m.BasePrice + m.PricePerPerson*float64(guests))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
