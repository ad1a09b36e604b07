package onboarding

import (
	"errors"
	"fmt"

	"foodie/internal/domain"
	"foodie/internal/pkg/validator"
)

const minPortfolioImages = 3

// Draft accumulates everything the chef enters across the wizard. It is only
// persisted when the wizard reaches the go-live step.
type Draft struct {
	FullName           string                  `json:"full_name" validate:"max=120"`
	Email              string                  `json:"email" validate:"omitempty,email"`
	Phone              string                  `json:"phone" validate:"max=32"`
	CuisineStrengths   []string                `json:"cuisine_strengths"`
	Location           string                  `json:"location" validate:"max=200"`
	Experiences        []string                `json:"experiences"`
	GuestCapacity      int                     `json:"guest_capacity" validate:"gte=1,lte=500"`
	PriceTier          string                  `json:"price_tier" validate:"oneof=$ $$ $$$ $$$$"`
	TravelRadius       int                     `json:"travel_radius" validate:"gte=0,lte=500"`
	AvailabilityType   domain.AvailabilityType `json:"availability_type" validate:"oneof=always fixed"`
	WeeklySchedule     []string                `json:"weekly_schedule" validate:"dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	SLAAccepted        bool                    `json:"sla_accepted"`
	IDFrontURL         string                  `json:"id_front_url" validate:"omitempty,url"`
	IDBackURL          string                  `json:"id_back_url" validate:"omitempty,url"`
	FoodCertificateURL string                  `json:"food_certificate_url" validate:"omitempty,url"`
	PortfolioURLs      []string                `json:"portfolio_urls" validate:"dive,url"`
	DryRunAccepted     bool                    `json:"dry_run_accepted"`
}

func NewDraft() Draft {
	return Draft{
		CuisineStrengths: []string{},
		Experiences:      []string{},
		GuestCapacity:    10,
		PriceTier:        "$$",
		TravelRadius:     10,
		AvailabilityType: domain.AvailabilityAlways,
		WeeklySchedule:   []string{},
		PortfolioURLs:    []string{},
	}
}

// DraftPatch is a partial update; nil fields are left alone.
type DraftPatch struct {
	FullName           *string                  `json:"full_name"`
	Email              *string                  `json:"email"`
	Phone              *string                  `json:"phone"`
	CuisineStrengths   []string                 `json:"cuisine_strengths"`
	Location           *string                  `json:"location"`
	Experiences        []string                 `json:"experiences"`
	GuestCapacity      *int                     `json:"guest_capacity"`
	PriceTier          *string                  `json:"price_tier"`
	TravelRadius       *int                     `json:"travel_radius"`
	AvailabilityType   *domain.AvailabilityType `json:"availability_type"`
	WeeklySchedule     []string                 `json:"weekly_schedule"`
	SLAAccepted        *bool                    `json:"sla_accepted"`
	IDFrontURL         *string                  `json:"id_front_url"`
	IDBackURL          *string                  `json:"id_back_url"`
	FoodCertificateURL *string                  `json:"food_certificate_url"`
	PortfolioURLs      []string                 `json:"portfolio_urls"`
}

func (d *Draft) Apply(p DraftPatch) {
	setString(&d.FullName, p.FullName)
	setString(&d.Email, p.Email)
	setString(&d.Phone, p.Phone)
	setString(&d.Location, p.Location)
	setString(&d.PriceTier, p.PriceTier)
	setString(&d.IDFrontURL, p.IDFrontURL)
	setString(&d.IDBackURL, p.IDBackURL)
	setString(&d.FoodCertificateURL, p.FoodCertificateURL)

	if p.CuisineStrengths != nil {
		d.CuisineStrengths = clone(p.CuisineStrengths)
	}
	if p.Experiences != nil {
		d.Experiences = clone(p.Experiences)
	}
	if p.WeeklySchedule != nil {
		d.WeeklySchedule = clone(p.WeeklySchedule)
	}
	if p.PortfolioURLs != nil {
		d.PortfolioURLs = clone(p.PortfolioURLs)
	}
	if p.GuestCapacity != nil {
		d.GuestCapacity = *p.GuestCapacity
	}
	if p.TravelRadius != nil {
		d.TravelRadius = *p.TravelRadius
	}
	if p.AvailabilityType != nil {
		d.AvailabilityType = *p.AvailabilityType
	}
	if p.SLAAccepted != nil {
		d.SLAAccepted = *p.SLAAccepted
	}
}

// Copy returns a draft that shares no slices with d.
func (d Draft) Copy() Draft {
	d.CuisineStrengths = clone(d.CuisineStrengths)
	d.Experiences = clone(d.Experiences)
	d.WeeklySchedule = clone(d.WeeklySchedule)
	d.PortfolioURLs = clone(d.PortfolioURLs)
	return d
}

func (d Draft) experienceGate() error {
	if len(d.Experiences) == 0 {
		return errors.New("select at least one experience type")
	}
	return nil
}

func (d Draft) availabilityGate() error {
	if d.AvailabilityType == domain.AvailabilityFixed && len(d.WeeklySchedule) == 0 {
		return errors.New("select at least one weekday for a fixed schedule")
	}
	return nil
}

func (d Draft) verificationGate() error {
	switch {
	case d.IDFrontURL == "":
		return errors.New("upload the front of your ID")
	case d.IDBackURL == "":
		return errors.New("upload the back of your ID")
	case d.FoodCertificateURL == "":
		return errors.New("upload your food handling certificate")
	case len(d.PortfolioURLs) < minPortfolioImages:
		return errors.New("upload at least 3 portfolio images")
	}
	return nil
}

// submissionGate re-checks every gate that depends on the draft alone. The
// scroll and dry-run interactions only exist inside a live wizard.
func (d Draft) submissionGate() error {
	if err := d.experienceGate(); err != nil {
		return err
	}
	if err := d.availabilityGate(); err != nil {
		return err
	}
	if !d.SLAAccepted {
		return errors.New("accept the service level agreement")
	}
	return d.verificationGate()
}

// validate applies the field rules the chef profile is stored with.
func (d Draft) validate() error {
	if errs := validator.Validate(d); errs != nil {
		return fmt.Errorf("Invalid onboarding data: %s", validator.Summary(errs))
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func clone(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
