package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodie/internal/domain"
	"foodie/internal/events"
	"foodie/internal/pkg/apperr"
	"foodie/internal/pkg/besteffort"
	"foodie/internal/repository"

	"go.uber.org/zap"
)

// accepted date_time layouts; the first is ISO 8601 with offset
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

type Service struct {
	bookings    BookingRepository
	menus       MenuRepository
	meals       MealRepository
	events      events.Publisher
	sideEffects besteffort.Runner
	now         func() time.Time
	log         *zap.Logger
}

func NewService(
	bookings BookingRepository,
	menus MenuRepository,
	meals MealRepository,
	publisher events.Publisher,
	sideEffects besteffort.Runner,
	log *zap.Logger,
) *Service {
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
		menus:       menus,
		meals:       meals,
		events:      publisher,
		sideEffects: sideEffects,
		now:         time.Now,
		log:         log,
	}
}

// WithClock replaces the clock used to decide whether a date is in the future.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// pricedTarget is the entity a booking is priced against.
type pricedTarget struct {
	menu *domain.Menu
	meal *domain.Meal
}

func (p pricedTarget) quote(guests int) float64 {
	if p.menu != nil {
		return p.menu.Quote(guests)
	}
	return p.meal.Quote(guests)
}

// CreateBooking validates the request against the live menu or meal, computes
// the authoritative price and stores a pending booking. Meal popularity and
// the booking.created event are best-effort and never affect the result.
func (s *Service) CreateBooking(ctx context.Context, caller *domain.Identity, req CreateBookingRequest) (*domain.Booking, error) {
	if caller == nil || caller.UserID == "" {
		return nil, apperr.Unauthorized()
	}

	menuID := strings.TrimSpace(req.MenuID)
	mealID := strings.TrimSpace(req.MealID)
	if menuID == "" && mealID == "" {
		return nil, apperr.Validation("missing required fields")
	}
	if menuID != "" && mealID != "" {
		return nil, apperr.Validation("provide either menu_id or meal_id, not both")
	}

	address := strings.TrimSpace(req.Address)
	rawDate := strings.TrimSpace(req.DateTime)
	if rawDate == "" || req.GuestsCount == 0 || address == "" {
		return nil, apperr.Validation("missing required fields")
	}
	if req.GuestsCount < 0 {
		return nil, apperr.Validation("guests_count must be a positive integer")
	}

	target, err := s.resolveTarget(ctx, menuID, mealID, req.GuestsCount)
	if err != nil {
		return nil, err
	}

	dateTime, err := parseDateTime(rawDate)
	if err != nil {
		return nil, apperr.Validation("invalid date")
	}
	if !dateTime.After(s.now()) {
		return nil, apperr.Validation("date must be in the future")
	}

	b := &domain.Booking{
		ClientID:    caller.UserID,
		DateTime:    dateTime.UTC(),
		Address:     address,
		GuestsCount: req.GuestsCount,
		TotalPrice:  target.quote(req.GuestsCount),
		Status:      domain.BookingPending,
	}
	if target.menu != nil {
		b.MenuID = &target.menu.ID
		if target.menu.ExperienceID != "" {
			experienceID := target.menu.ExperienceID
			b.ExperienceID = &experienceID
		}
	} else {
		b.MealID = &target.meal.ID
	}
	if sr := strings.TrimSpace(req.SpecialRequests); sr != "" {
		b.SpecialRequests = &sr
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, apperr.Persistence(err, "Failed to create booking")
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("client_id", b.ClientID),
		zap.Float64("total_price", b.TotalPrice),
	)

	s.afterCommit(b)
	return b, nil
}

func (s *Service) resolveTarget(ctx context.Context, menuID, mealID string, guests int) (pricedTarget, error) {
	if menuID != "" {
		menu, err := s.menus.GetByID(ctx, menuID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return pricedTarget{}, apperr.NotFound("Menu not found")
			}
			return pricedTarget{}, apperr.Persistence(err, "Failed to load menu")
		}
		if !menu.IsBookable() {
			return pricedTarget{}, apperr.InvalidState("menu not available")
		}
		if !menu.AcceptsGuests(guests) {
			return pricedTarget{}, apperr.Validation("guest count must be between %d and %d", menu.GuestMin, menu.GuestMax)
		}
		return pricedTarget{menu: menu}, nil
	}

	meal, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return pricedTarget{}, apperr.NotFound("Meal not found")
		}
		return pricedTarget{}, apperr.Persistence(err, "Failed to load meal")
	}
	return pricedTarget{meal: meal}, nil
}

func (s *Service) afterCommit(b *domain.Booking) {
	event := events.NewBookingEvent(events.TypeBookingCreated, b, s.now())
	s.sideEffects.Go("publish booking.created", func(ctx context.Context) error {
		return s.events.PublishBookingEvent(ctx, event)
	})

	if b.MenuID != nil {
		menuID := *b.MenuID
		s.sideEffects.Go("meal popularity", func(ctx context.Context) error {
			return s.trackMealPopularity(ctx, menuID)
		})
	}
}

// trackMealPopularity increments total_bookings of every meal on the menu. It
// keeps going past individual failures and reports them together.
func (s *Service) trackMealPopularity(ctx context.Context, menuID string) error {
	ids, err := s.meals.MealIDsForMenu(ctx, menuID)
	if err != nil {
		return fmt.Errorf("load meals of menu %s: %w", menuID, err)
	}

	var errs []error
	for _, id := range ids {
		if err := s.meals.IncrementBookings(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("increment meal %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// ListMine returns the caller's bookings, newest first.
func (s *Service) ListMine(ctx context.Context, caller *domain.Identity, limit, offset int) ([]domain.Booking, error) {
	if caller == nil || caller.UserID == "" {
		return nil, apperr.Unauthorized()
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	out, err := s.bookings.ListByClient(ctx, caller.UserID, limit, offset)
	if err != nil {
		return nil, apperr.Persistence(err, "Failed to load bookings")
	}
	return out, nil
}

func parseDateTime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
