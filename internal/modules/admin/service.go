package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodie/internal/domain"
	"foodie/internal/events"
	"foodie/internal/pkg/apperr"
	"foodie/internal/pkg/besteffort"
	"foodie/internal/repository"

	"go.uber.org/zap"
)

type Service struct {
	bookings    BookingRepository
	events      events.Publisher
	sideEffects besteffort.Runner
	log         *zap.Logger
}

func NewService(bookings BookingRepository, publisher events.Publisher, sideEffects besteffort.Runner, log *zap.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if sideEffects == nil {
		sideEffects = besteffort.Inline{Log: log}
	}
	return &Service{
		bookings:    bookings,
		events:      publisher,
		sideEffects: sideEffects,
		log:         log,
	}
}

// Authorize fails with Unauthorized for anonymous callers and Forbidden for
// callers whose role claim is not admin.
func (s *Service) Authorize(caller *domain.Identity) error {
	if caller == nil || caller.UserID == "" {
		return apperr.Unauthorized()
	}
	if !caller.IsAdmin() {
		return apperr.Forbidden()
	}
	return nil
}

// UpdateBookingStatus overwrites the status column of one booking. Any
// status in the enum may follow any other; concurrent updates are last write
// wins.
func (s *Service) UpdateBookingStatus(ctx context.Context, caller *domain.Identity, bookingID, rawStatus string) (*domain.Booking, error) {
	if err := s.Authorize(caller); err != nil {
		return nil, err
	}

	status, ok := domain.ParseBookingStatus(strings.TrimSpace(rawStatus))
	if !ok {
		return nil, apperr.Validation("status must be one of: %s", domain.BookingStatusList())
	}

	b, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Booking not found")
		}
		return nil, apperr.Persistence(err, "Failed to update booking status")
	}

	s.log.Info("booking status updated",
		zap.String("booking_id", b.ID),
		zap.String("status", string(b.Status)),
		zap.String("admin_id", caller.UserID),
	)

	event := events.NewBookingEvent(events.TypeBookingStatusChanged, b, time.Now())
	s.sideEffects.Go("publish booking.status_changed", func(ctx context.Context) error {
		return s.events.PublishBookingEvent(ctx, event)
	})

	return b, nil
}

// ListBookings pages through every booking, optionally filtered by status.
func (s *Service) ListBookings(ctx context.Context, caller *domain.Identity, req ListBookingsRequest) ([]domain.Booking, int64, error) {
	if err := s.Authorize(caller); err != nil {
		return nil, 0, err
	}

	var filter repository.BookingFilter
	if req.Status != "" {
		status, ok := domain.ParseBookingStatus(req.Status)
		if !ok {
			return nil, 0, apperr.Validation("status must be one of: %s", domain.BookingStatusList())
		}
		filter.Status = status
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	out, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Persistence(err, "Failed to load bookings")
	}
	return out, total, nil
}
