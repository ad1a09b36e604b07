package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodie/internal/domain"
	"foodie/internal/events"
	"foodie/internal/pkg/apperr"
	"foodie/internal/pkg/besteffort"
	"foodie/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = "booking-1" // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) GetByID(ctx context.Context, id string) (*domain.Menu, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Menu), args.Error(1)
}

type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meal), args.Error(1)
}

func (m *MockMealRepository) MealIDsForMenu(ctx context.Context, menuID string) ([]string, error) {
	args := m.Called(ctx, menuID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMealRepository) IncrementBookings(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type recordingPublisher struct {
	events []events.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, e events.BookingEvent) error {
	p.events = append(p.events, e)
	return p.err
}

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	bookings  *MockBookingRepository
	menus     *MockMenuRepository
	meals     *MockMealRepository
	publisher *recordingPublisher
	logs      *observer.ObservedLogs
	service   *Service
}

func newFixture() *fixture {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	f := &fixture{
		bookings:  new(MockBookingRepository),
		menus:     new(MockMenuRepository),
		meals:     new(MockMealRepository),
		publisher: &recordingPublisher{},
		logs:      logs,
	}
	f.service = NewService(f.bookings, f.menus, f.meals, f.publisher, besteffort.Inline{Log: log}, log).
		WithClock(func() time.Time { return fixedNow })
	return f
}

func client() *domain.Identity {
	return &domain.Identity{UserID: "client-1", Email: "client@example.com", Role: domain.RoleClient}
}

func activeMenu() *domain.Menu {
	return &domain.Menu{
		ID:             "menu-1",
		ExperienceID:   "exp-1",
		Name:           "Tasting",
		BasePrice:      1000,
		PricePerPerson: 200,
		GuestMin:       2,
		GuestMax:       10,
		Status:         domain.MenuActive,
	}
}

func menuRequest(guests int) CreateBookingRequest {
	return CreateBookingRequest{
		MenuID:      "menu-1",
		DateTime:    "2026-07-01T19:00:00Z",
		GuestsCount: guests,
		Address:     "12 Harbour Road",
	}
}

func TestService_CreateBooking_MenuSuccess(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.meals.On("MealIDsForMenu", mock.Anything, "menu-1").Return([]string{"meal-a", "meal-b"}, nil)
	f.meals.On("IncrementBookings", mock.Anything, "meal-a").Return(nil)
	f.meals.On("IncrementBookings", mock.Anything, "meal-b").Return(nil)

	b, err := f.service.CreateBooking(context.Background(), client(), menuRequest(4))

	require.NoError(t, err)
	assert.Equal(t, "booking-1", b.ID)
	assert.Equal(t, 1800.0, b.TotalPrice)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, "client-1", b.ClientID)
	require.NotNil(t, b.MenuID)
	assert.Equal(t, "menu-1", *b.MenuID)
	require.NotNil(t, b.ExperienceID)
	assert.Equal(t, "exp-1", *b.ExperienceID)
	assert.Nil(t, b.MealID)

	f.meals.AssertNumberOfCalls(t, "IncrementBookings", 2)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, "booking-1", f.publisher.events[0].BookingID)
}

func TestService_CreateBooking_IgnoresClientPriceAndStatus(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.meals.On("MealIDsForMenu", mock.Anything, "menu-1").Return([]string{}, nil)

	req := menuRequest(4)
	cheap := 1.0
	req.TotalPrice = &cheap
	req.Status = "confirmed"

	b, err := f.service.CreateBooking(context.Background(), client(), req)

	require.NoError(t, err)
	assert.Equal(t, 1800.0, b.TotalPrice)
	assert.Equal(t, domain.BookingPending, b.Status)
}

func TestService_CreateBooking_MealSuccess(t *testing.T) {
	f := newFixture()
	meal := &domain.Meal{ID: "meal-1", Name: "Paella", Price: 24.99, IsActive: false}
	f.meals.On("GetByID", mock.Anything, "meal-1").Return(meal, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	b, err := f.service.CreateBooking(context.Background(), client(), CreateBookingRequest{
		MealID:          "meal-1",
		DateTime:        "2026-07-01T19:00:00+02:00",
		GuestsCount:     3,
		Address:         "Flat 4",
		SpecialRequests: "  no nuts ",
	})

	require.NoError(t, err)
	assert.Equal(t, 74.97, b.TotalPrice)
	assert.Nil(t, b.MenuID)
	assert.Nil(t, b.ExperienceID)
	require.NotNil(t, b.SpecialRequests)
	assert.Equal(t, "no nuts", *b.SpecialRequests)
	assert.Equal(t, time.Date(2026, 7, 1, 17, 0, 0, 0, time.UTC), b.DateTime)
	f.meals.AssertNotCalled(t, "MealIDsForMenu", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_Unauthorized(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateBooking(context.Background(), nil, menuRequest(4))

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	f.menus.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_UnauthorizedBeforeValidation(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateBooking(context.Background(), nil, CreateBookingRequest{})

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestService_CreateBooking_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateBookingRequest)
		message string
	}{
		{"no reference", func(r *CreateBookingRequest) { r.MenuID = "" }, "missing required fields"},
		{"both references", func(r *CreateBookingRequest) { r.MealID = "meal-1" }, "provide either menu_id or meal_id, not both"},
		{"no date", func(r *CreateBookingRequest) { r.DateTime = "" }, "missing required fields"},
		{"no guests", func(r *CreateBookingRequest) { r.GuestsCount = 0 }, "missing required fields"},
		{"blank address", func(r *CreateBookingRequest) { r.Address = "   " }, "missing required fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := menuRequest(4)
			tt.mutate(&req)

			_, err := f.service.CreateBooking(context.Background(), client(), req)

			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tt.message, apperr.Message(err))
			f.menus.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateBooking_MenuNotFound(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(nil, repository.ErrNotFound)

	_, err := f.service.CreateBooking(context.Background(), client(), menuRequest(4))

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_MenuLookupFailure(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(nil, errors.New("connection reset"))

	_, err := f.service.CreateBooking(context.Background(), client(), menuRequest(4))

	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

func TestService_CreateBooking_InactiveMenu(t *testing.T) {
	f := newFixture()
	menu := activeMenu()
	menu.Status = domain.MenuInactive
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(menu, nil)

	_, err := f.service.CreateBooking(context.Background(), client(), menuRequest(4))

	assert.ErrorIs(t, err, apperr.ErrInvalidState)
	assert.Equal(t, "menu not available", apperr.Message(err))
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_GuestsOutOfRange(t *testing.T) {
	for _, guests := range []int{1, 11} {
		f := newFixture()
		f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)

		_, err := f.service.CreateBooking(context.Background(), client(), menuRequest(guests))

		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Contains(t, apperr.Message(err), "between 2 and 10")
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestService_CreateBooking_GuestRangeIsInclusive(t *testing.T) {
	for _, guests := range []int{2, 10} {
		f := newFixture()
		f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.meals.On("MealIDsForMenu", mock.Anything, "menu-1").Return([]string{}, nil)

		b, err := f.service.CreateBooking(context.Background(), client(), menuRequest(guests))

		require.NoError(t, err)
		assert.Equal(t, 1000+200*float64(guests), b.TotalPrice)
	}
}

func TestService_CreateBooking_MealNotFound(t *testing.T) {
	f := newFixture()
	f.meals.On("GetByID", mock.Anything, "meal-9").Return(nil, repository.ErrNotFound)

	_, err := f.service.CreateBooking(context.Background(), client(), CreateBookingRequest{
		MealID:      "meal-9",
		DateTime:    "2026-07-01T19:00:00Z",
		GuestsCount: 2,
		Address:     "Flat 4",
	})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Meal not found", apperr.Message(err))
}

func TestService_CreateBooking_InvalidDate(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	req := menuRequest(4)
	req.DateTime = "next friday"

	_, err := f.service.CreateBooking(context.Background(), client(), req)

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "invalid date", apperr.Message(err))
}

func TestService_CreateBooking_DateNotInFuture(t *testing.T) {
	for _, raw := range []string{"2026-05-31T19:00:00Z", fixedNow.Format(time.RFC3339)} {
		f := newFixture()
		f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
		req := menuRequest(4)
		req.DateTime = raw

		_, err := f.service.CreateBooking(context.Background(), client(), req)

		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "date must be in the future", apperr.Message(err))
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestService_CreateBooking_AcceptsLocalDateTime(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.meals.On("MealIDsForMenu", mock.Anything, "menu-1").Return([]string{}, nil)
	req := menuRequest(4)
	req.DateTime = "2026-07-01T19:00"

	b, err := f.service.CreateBooking(context.Background(), client(), req)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 19, 0, 0, 0, time.UTC), b.DateTime)
}

func TestService_CreateBooking_AcceptsDateOnly(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.meals.On("MealIDsForMenu", mock.Anything, "menu-1").Return([]string{}, nil)
	req := menuRequest(4)
	req.DateTime = "2030-01-02"

	b, err := f.service.CreateBooking(context.Background(), client(), req)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC), b.DateTime)
}

func TestService_CreateBooking_DateOnlyTodayIsNotFuture(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	req := menuRequest(4)
	req.DateTime = "2026-06-01"

	_, err := f.service.CreateBooking(context.Background(), client(), req)

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "date must be in the future", apperr.Message(err))
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_PersistenceFailure(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := f.service.CreateBooking(context.Background(), client(), menuRequest(4))

	assert.ErrorIs(t, err, apperr.ErrPersistence)
	f.meals.AssertNotCalled(t, "MealIDsForMenu", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.events)
}

func TestService_CreateBooking_SideEffectFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.meals.On("MealIDsForMenu", mock.Anything, "menu-1").Return([]string{"meal-a", "meal-b"}, nil)
	f.meals.On("IncrementBookings", mock.Anything, "meal-a").Return(errors.New("lock timeout"))
	f.meals.On("IncrementBookings", mock.Anything, "meal-b").Return(nil)
	f.publisher.err = errors.New("broker down")

	b, err := f.service.CreateBooking(context.Background(), client(), menuRequest(4))

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 1800.0, b.TotalPrice)
	f.meals.AssertCalled(t, "IncrementBookings", mock.Anything, "meal-b")
	assert.Equal(t, 2, f.logs.FilterMessage("best-effort task failed").Len())
}

func TestService_ListMine(t *testing.T) {
	f := newFixture()
	f.bookings.On("ListByClient", mock.Anything, "client-1", 20, 0).
		Return([]domain.Booking{{ID: "b-2"}, {ID: "b-1"}}, nil)

	out, err := f.service.ListMine(context.Background(), client(), 0, -5)

	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestService_ListMine_Unauthorized(t *testing.T) {
	f := newFixture()

	_, err := f.service.ListMine(context.Background(), nil, 10, 0)

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
