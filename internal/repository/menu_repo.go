package repository

import (
	"context"
	"time"

	"foodie/internal/domain"
	"foodie/internal/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

type menuModel struct {
	ID             string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	ExperienceID   string    `gorm:"column:experience_id;type:varchar(36);index"`
	Name           string    `gorm:"column:name;not null"`
	Description    string    `gorm:"column:description;type:text"`
	BasePrice      float64   `gorm:"column:base_price;not null;default:0"`
	PricePerPerson float64   `gorm:"column:price_per_person;not null;default:0"`
	GuestMin       int       `gorm:"column:guest_min;not null;default:1"`
	GuestMax       int       `gorm:"column:guest_max;not null;default:1"`
	DietaryTags    string    `gorm:"column:dietary_tags;type:text"`
	ImageURL       string    `gorm:"column:image_url"`
	Status         string    `gorm:"column:status;index;default:inactive"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (menuModel) TableName() string { return "menus" }

func (m *menuModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func toDomainMenu(m menuModel) *domain.Menu {
	return &domain.Menu{
		ID:             m.ID,
		ExperienceID:   m.ExperienceID,
		Name:           m.Name,
		Description:    m.Description,
		BasePrice:      m.BasePrice,
		PricePerPerson: m.PricePerPerson,
		GuestMin:       m.GuestMin,
		GuestMax:       m.GuestMax,
		DietaryTags:    utils.StringToTags(m.DietaryTags),
		ImageURL:       m.ImageURL,
		Status:         domain.MenuStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *MenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	m := menuModel{
		ID:             menu.ID,
		ExperienceID:   menu.ExperienceID,
		Name:           menu.Name,
		Description:    menu.Description,
		BasePrice:      menu.BasePrice,
		PricePerPerson: menu.PricePerPerson,
		GuestMin:       menu.GuestMin,
		GuestMax:       menu.GuestMax,
		DietaryTags:    utils.TagsToString(menu.DietaryTags),
		ImageURL:       menu.ImageURL,
		Status:         string(menu.Status),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*menu = *toDomainMenu(m)
	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id string) (*domain.Menu, error) {
	var m menuModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainMenu(m), nil
}

// ListActiveByExperience returns the bookable menus of an experience, cheapest first.
func (r *MenuRepository) ListActiveByExperience(ctx context.Context, experienceID string) ([]domain.Menu, error) {
	var rows []menuModel
	err := r.db.WithContext(ctx).
		Where("experience_id = ? AND status = ?", experienceID, string(domain.MenuActive)).
		Order("base_price ASC").
		Order("price_per_person ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	out := make([]domain.Menu, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMenu(m))
	}
	return out, nil
}
