package onboarding

import (
	"context"

	"foodie/internal/domain"
)

type ChefRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Chef, error)
	Upsert(ctx context.Context, c *domain.Chef) error
}
