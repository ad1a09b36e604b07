package admin

import (
	"context"

	"foodie/internal/domain"
	"foodie/internal/repository"
)

type BookingRepository interface {
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, int64, error)
}
