package catalog

import (
	"context"

	"foodie/internal/domain"
)

type ExperienceRepository interface {
	ListPublished(ctx context.Context) ([]domain.Experience, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Experience, error)
}

type MenuRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Menu, error)
	ListActiveByExperience(ctx context.Context, experienceID string) ([]domain.Menu, error)
}

type MealRepository interface {
	MenuMeals(ctx context.Context, menuID string) ([]domain.MenuMeal, error)
	ListFeatured(ctx context.Context, limit int) ([]domain.Meal, error)
}
