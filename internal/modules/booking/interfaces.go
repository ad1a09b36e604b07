package booking

import (
	"context"

	"foodie/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]domain.Booking, error)
}

type MenuRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Menu, error)
}

type MealRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Meal, error)
	MealIDsForMenu(ctx context.Context, menuID string) ([]string, error)
	IncrementBookings(ctx context.Context, id string) error
}
