package repository

import (
	"context"
	"time"

	"foodie/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExperienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) *ExperienceRepository {
	return &ExperienceRepository{db: db}
}

type experienceModel struct {
	ID          string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description;type:text"`
	Category    string    `gorm:"column:category;index"`
	ImageURL    string    `gorm:"column:image_url"`
	IsFeatured  bool      `gorm:"column:is_featured"`
	Status      string    `gorm:"column:status;index;default:draft"`
	Slug        string    `gorm:"column:slug;uniqueIndex"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (experienceModel) TableName() string { return "experiences" }

func (m *experienceModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func toDomainExperience(m experienceModel) *domain.Experience {
	return &domain.Experience{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		IsFeatured:  m.IsFeatured,
		Status:      domain.ExperienceStatus(m.Status),
		Slug:        m.Slug,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *ExperienceRepository) Create(ctx context.Context, e *domain.Experience) error {
	m := experienceModel{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,
		ImageURL:    e.ImageURL,
		IsFeatured:  e.IsFeatured,
		Status:      string(e.Status),
		Slug:        e.Slug,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*e = *toDomainExperience(m)
	return nil
}

// ListPublished returns published experiences, featured first.
func (r *ExperienceRepository) ListPublished(ctx context.Context) ([]domain.Experience, error) {
	var rows []experienceModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.ExperiencePublished)).
		Order("is_featured DESC").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	out := make([]domain.Experience, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainExperience(m))
	}
	return out, nil
}

func (r *ExperienceRepository) GetBySlug(ctx context.Context, slug string) (*domain.Experience, error) {
	var m experienceModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainExperience(m), nil
}
