package domain

import "time"

type AvailabilityType string

const (
	AvailabilityAlways AvailabilityType = "always"
	AvailabilityFixed  AvailabilityType = "fixed"
)

// OnboardingComplete is the onboarding_step value of a chef that went live.
const OnboardingComplete = 7

type Chef struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	FullName           string           `json:"full_name"`
	Email              string           `json:"email"`
	Phone              string           `json:"phone"`
	CuisineStrengths   []string         `json:"cuisine_strengths"`
	Location           string           `json:"location"`
	Experiences        []string         `json:"experiences"`
	GuestCapacity      int              `json:"guest_capacity"`
	PriceTier          string           `json:"price_tier"`
	TravelRadius       int              `json:"travel_radius"`
	AvailabilityType   AvailabilityType `json:"availability_type"`
	WeeklySchedule     []string         `json:"weekly_schedule"`
	SLAAccepted        bool             `json:"sla_accepted"`
	IDFrontURL         string           `json:"id_front_url,omitempty"`
	IDBackURL          string           `json:"id_back_url,omitempty"`
	FoodCertificateURL string           `json:"food_certificate_url,omitempty"`
	PortfolioURLs      []string         `json:"portfolio_urls"`
	DryRunAccepted     bool             `json:"dry_run_accepted"`
	OnboardingStep     int              `json:"onboarding_step"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (c *Chef) IsOnboarded() bool {
	return c.OnboardingStep >= OnboardingComplete
}
