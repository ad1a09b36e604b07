package domain

import "time"

type ExperienceStatus string

const (
	ExperienceDraft     ExperienceStatus = "draft"
	ExperiencePublished ExperienceStatus = "published"
	ExperienceArchived  ExperienceStatus = "archived"
)

// Experience is a curated category of dining event, e.g. "private dinner".
// Clients only ever see published experiences.
type Experience struct {
	ID          string           `json:"id"`
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category" validate:"required"`
	ImageURL    string           `json:"image_url,omitempty"`
	IsFeatured  bool             `json:"is_featured"`
	Status      ExperienceStatus `json:"status" validate:"oneof=draft published archived"`
	Slug        string           `json:"slug" validate:"required"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (e *Experience) IsVisible() bool {
	return e.Status == ExperiencePublished
}
