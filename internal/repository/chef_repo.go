package repository

import (
	"context"
	"time"

	"foodie/internal/domain"
	"foodie/internal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChefRepository struct {
	db *gorm.DB
}

func NewChefRepository(db *gorm.DB) *ChefRepository {
	return &ChefRepository{db: db}
}

type chefModel struct {
	ID                 string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	UserID             string    `gorm:"column:user_id;type:varchar(36);uniqueIndex"`
	FullName           string    `gorm:"column:full_name"`
	Email              string    `gorm:"column:email"`
	Phone              string    `gorm:"column:phone"`
	CuisineStrengths   string    `gorm:"column:cuisine_strengths;type:text"`
	Location           string    `gorm:"column:location"`
	Experiences        string    `gorm:"column:experiences;type:text"`
	GuestCapacity      int       `gorm:"column:guest_capacity"`
	PriceTier          string    `gorm:"column:price_tier"`
	TravelRadius       int       `gorm:"column:travel_radius"`
	AvailabilityType   string    `gorm:"column:availability_type"`
	WeeklySchedule     string    `gorm:"column:weekly_schedule;type:text"`
	SLAAccepted        bool      `gorm:"column:sla_accepted"`
	IDFrontURL         string    `gorm:"column:id_front_url"`
	IDBackURL          string    `gorm:"column:id_back_url"`
	FoodCertificateURL string    `gorm:"column:food_certificate_url"`
	PortfolioURLs      string    `gorm:"column:portfolio_urls;type:text"`
	DryRunAccepted     bool      `gorm:"column:dry_run_accepted"`
	OnboardingStep     int       `gorm:"column:onboarding_step;not null;default:1"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (chefModel) TableName() string { return "chefs" }

func (m *chefModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func toDomainChef(m chefModel) *domain.Chef {
	return &domain.Chef{
		ID:                 m.ID,
		UserID:             m.UserID,
		FullName:           m.FullName,
		Email:              m.Email,
		Phone:              m.Phone,
		CuisineStrengths:   utils.StringToTags(m.CuisineStrengths),
		Location:           m.Location,
		Experiences:        utils.StringToTags(m.Experiences),
		GuestCapacity:      m.GuestCapacity,
		PriceTier:          m.PriceTier,
		TravelRadius:       m.TravelRadius,
		AvailabilityType:   domain.AvailabilityType(m.AvailabilityType),
		WeeklySchedule:     utils.StringToTags(m.WeeklySchedule),
		SLAAccepted:        m.SLAAccepted,
		IDFrontURL:         m.IDFrontURL,
		IDBackURL:          m.IDBackURL,
		FoodCertificateURL: m.FoodCertificateURL,
		PortfolioURLs:      utils.StringToTags(m.PortfolioURLs),
		DryRunAccepted:     m.DryRunAccepted,
		OnboardingStep:     m.OnboardingStep,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toChefModel(c *domain.Chef) chefModel {
	return chefModel{
		ID:                 c.ID,
		UserID:             c.UserID,
		FullName:           c.FullName,
		Email:              c.Email,
		Phone:              c.Phone,
		CuisineStrengths:   utils.TagsToString(c.CuisineStrengths),
		Location:           c.Location,
		Experiences:        utils.TagsToString(c.Experiences),
		GuestCapacity:      c.GuestCapacity,
		PriceTier:          c.PriceTier,
		TravelRadius:       c.TravelRadius,
		AvailabilityType:   string(c.AvailabilityType),
		WeeklySchedule:     utils.TagsToString(c.WeeklySchedule),
		SLAAccepted:        c.SLAAccepted,
		IDFrontURL:         c.IDFrontURL,
		IDBackURL:          c.IDBackURL,
		FoodCertificateURL: c.FoodCertificateURL,
		PortfolioURLs:      utils.TagsToString(c.PortfolioURLs),
		DryRunAccepted:     c.DryRunAccepted,
		OnboardingStep:     c.OnboardingStep,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func (r *ChefRepository) GetByUserID(ctx context.Context, userID string) (*domain.Chef, error) {
	var m chefModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainChef(m), nil
}

// Upsert inserts the chef profile or overwrites the existing profile of the same user.
func (r *ChefRepository) Upsert(ctx context.Context, c *domain.Chef) error {
	m := toChefModel(c)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "email", "phone", "cuisine_strengths", "location",
				"experiences", "guest_capacity", "price_tier", "travel_radius",
				"availability_type", "weekly_schedule", "sla_accepted",
				"id_front_url", "id_back_url", "food_certificate_url",
				"portfolio_urls", "dry_run_accepted", "onboarding_step", "updated_at",
			}),
		}).
		Create(&m).Error
	if err != nil {
		return translate(err)
	}
	return nil
}
