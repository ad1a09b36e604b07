package catalog

import (
	"context"
	"errors"
	"fmt"

	"foodie/internal/domain"
	"foodie/internal/pkg/apperr"
	"foodie/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultFeaturedLimit = 8
	maxFeaturedLimit     = 50
)

type Service struct {
	experiences ExperienceRepository
	menus       MenuRepository
	meals       MealRepository
	cache       Cache
	log         *zap.Logger
}

func NewService(experiences ExperienceRepository, menus MenuRepository, meals MealRepository, cache Cache, log *zap.Logger) *Service {
	if cache == nil {
		cache = NoCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		experiences: experiences,
		menus:       menus,
		meals:       meals,
		cache:       cache,
		log:         log,
	}
}

func (s *Service) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	var out []domain.Experience
	err := s.cached(ctx, "experiences", &out, func() error {
		list, err := s.experiences.ListPublished(ctx)
		out = list
		return err
	})
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to load experiences")
	}
	return out, nil
}

// GetExperience hides drafts and archived experiences behind NotFound.
func (s *Service) GetExperience(ctx context.Context, slug string) (*domain.Experience, error) {
	var out domain.Experience
	err := s.cached(ctx, "experience:"+slug, &out, func() error {
		e, err := s.experiences.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if !e.IsVisible() {
			return repository.ErrNotFound
		}
		out = *e
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "Experience not found", "Failed to load experience")
	}
	return &out, nil
}

func (s *Service) ListMenus(ctx context.Context, slug string) ([]domain.Menu, error) {
	exp, err := s.GetExperience(ctx, slug)
	if err != nil {
		return nil, err
	}

	var out []domain.Menu
	err = s.cached(ctx, "menus:"+exp.ID, &out, func() error {
		list, err := s.menus.ListActiveByExperience(ctx, exp.ID)
		out = list
		return err
	})
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to load menus")
	}
	return out, nil
}

func (s *Service) ListMenuMeals(ctx context.Context, menuID string) ([]domain.MenuMeal, error) {
	var out []domain.MenuMeal
	err := s.cached(ctx, "menu-meals:"+menuID, &out, func() error {
		if _, err := s.menus.GetByID(ctx, menuID); err != nil {
			return err
		}
		list, err := s.meals.MenuMeals(ctx, menuID)
		out = list
		return err
	})
	if err != nil {
		return nil, notFoundOr(err, "Menu not found", "Failed to load menu meals")
	}
	return out, nil
}

// FeaturedMeals returns the most booked active meals. limit defaults to 8 and
// is capped at 50.
func (s *Service) FeaturedMeals(ctx context.Context, limit int) ([]domain.Meal, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}

	var out []domain.Meal
	err := s.cached(ctx, fmt.Sprintf("meals:featured:%d", limit), &out, func() error {
		list, err := s.meals.ListFeatured(ctx, limit)
		out = list
		return err
	})
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to load featured meals")
	}
	return out, nil
}

// cached fills dst from the cache or runs load and stores the result. Cache
// failures are logged and fall through to load.
func (s *Service) cached(ctx context.Context, key string, dst any, load func() error) error {
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit && err == nil {
		return nil
	}

	if err := load(); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, key, dst); err != nil {
		s.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func notFoundOr(err error, notFound, failed string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("%s", notFound)
	}
	return apperr.Persistence(err, "%s", failed)
}
