package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodie/internal/domain"
	"foodie/internal/middleware"
	"foodie/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type bookingEnvelope struct {
	Success bool           `json:"success"`
	Booking domain.Booking `json:"booking"`
	Code    string         `json:"code"`
	Error   string         `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *fixture, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := newFixture()
	tokens := jwt.New("test-secret", time.Hour)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Authenticate(tokens))
	NewHandler(f.service).RegisterRoutes(api)

	return router, f, tokens
}

func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) bookingEnvelope {
	t.Helper()
	var out bookingEnvelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestHandler_CreateBooking_Created(t *testing.T) {
	router, f, tokens := setupRouter(t)
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.meals.On("MealIDsForMenu", mock.Anything, "menu-1").Return([]string{}, nil)

	token, err := tokens.GenerateToken("client-1", "client@example.com", "client")
	require.NoError(t, err)

	resp := performRequest(router, http.MethodPost, "/api/v1/bookings", map[string]any{
		"menu_id":      "menu-1",
		"date_time":    "2026-07-01T19:00:00Z",
		"guests_count": 4,
		"address":      "12 Harbour Road",
		"total_price":  1,
		"status":       "completed",
	}, token)

	require.Equal(t, http.StatusCreated, resp.Code)
	out := decode(t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, 1800.0, out.Booking.TotalPrice)
	assert.Equal(t, domain.BookingPending, out.Booking.Status)
	assert.Equal(t, "client-1", out.Booking.ClientID)
}

func TestHandler_CreateBooking_Anonymous(t *testing.T) {
	router, f, _ := setupRouter(t)

	resp := performRequest(router, http.MethodPost, "/api/v1/bookings", map[string]any{
		"menu_id": "menu-1",
	}, "")

	require.Equal(t, http.StatusUnauthorized, resp.Code)
	out := decode(t, resp)
	assert.False(t, out.Success)
	assert.Equal(t, "UNAUTHORIZED", out.Code)
	f.menus.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestHandler_CreateBooking_InvalidToken(t *testing.T) {
	router, _, _ := setupRouter(t)
	other := jwt.New("another-secret", time.Hour)
	token, err := other.GenerateToken("client-1", "client@example.com", "client")
	require.NoError(t, err)

	resp := performRequest(router, http.MethodPost, "/api/v1/bookings", map[string]any{}, token)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHandler_CreateBooking_GuestsBelowMinimum(t *testing.T) {
	router, f, tokens := setupRouter(t)
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(activeMenu(), nil)
	token, _ := tokens.GenerateToken("client-1", "client@example.com", "client")

	resp := performRequest(router, http.MethodPost, "/api/v1/bookings", map[string]any{
		"menu_id":      "menu-1",
		"date_time":    "2026-07-01T19:00:00Z",
		"guests_count": 1,
		"address":      "12 Harbour Road",
	}, token)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	out := decode(t, resp)
	assert.Equal(t, "VALIDATION_ERROR", out.Code)
	assert.Contains(t, out.Error, "between 2 and 10")
}

func TestHandler_CreateBooking_InactiveMenu(t *testing.T) {
	router, f, tokens := setupRouter(t)
	menu := activeMenu()
	menu.Status = domain.MenuInactive
	f.menus.On("GetByID", mock.Anything, "menu-1").Return(menu, nil)
	token, _ := tokens.GenerateToken("client-1", "client@example.com", "client")

	resp := performRequest(router, http.MethodPost, "/api/v1/bookings", menuRequest(4), token)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "INVALID_STATE", decode(t, resp).Code)
}

func TestHandler_CreateBooking_MalformedBody(t *testing.T) {
	router, _, tokens := setupRouter(t)
	token, _ := tokens.GenerateToken("client-1", "client@example.com", "client")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandler_ListMyBookings(t *testing.T) {
	router, f, tokens := setupRouter(t)
	f.bookings.On("ListByClient", mock.Anything, "client-1", 5, 0).
		Return([]domain.Booking{{ID: "b-1", ClientID: "client-1"}}, nil)
	token, _ := tokens.GenerateToken("client-1", "client@example.com", "client")

	resp := performRequest(router, http.MethodGet, "/api/v1/bookings/me?limit=5", nil, token)

	require.Equal(t, http.StatusOK, resp.Code)
	var out struct {
		Success  bool             `json:"success"`
		Bookings []domain.Booking `json:"bookings"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.Count)
}
