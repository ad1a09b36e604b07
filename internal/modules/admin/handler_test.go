package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodie/internal/domain"
	"foodie/internal/events"
	"foodie/internal/middleware"
	"foodie/internal/pkg/besteffort"
	"foodie/internal/pkg/jwt"
	"foodie/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router *gin.Engine
	repo   *MockBookingRepository
	hub    *Hub
	tokens *jwt.Service
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := new(MockBookingRepository)
	hub := NewHub(zap.NewNop())
	t.Cleanup(hub.Close)
	tokens := jwt.New("test-secret", time.Hour)

	svc := NewService(repo, hub, besteffort.Inline{}, zap.NewNop())

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Authenticate(tokens))
	NewHandler(svc, hub, tokens, zap.NewNop()).RegisterRoutes(api.Group("/admin"))

	return &testEnv{router: router, repo: repo, hub: hub, tokens: tokens}
}

func (e *testEnv) token(t *testing.T, role string) string {
	t.Helper()
	token, err := e.tokens.GenerateToken("user-1", "user@example.com", role)
	require.NoError(t, err)
	return token
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

type envelope struct {
	Success bool           `json:"success"`
	Booking domain.Booking `json:"booking"`
	Code    string         `json:"code"`
	Error   string         `json:"error"`
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var out envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestHandler_UpdateBookingStatus_OK(t *testing.T) {
	env := setupRouter(t)
	env.repo.On("UpdateStatus", mock.Anything, "b-1", domain.BookingInProgress).
		Return(&domain.Booking{ID: "b-1", Status: domain.BookingInProgress}, nil)

	resp := performRequest(env.router, http.MethodPatch, "/api/v1/admin/bookings/b-1",
		map[string]string{"status": "in_progress"}, env.token(t, "admin"))

	require.Equal(t, http.StatusOK, resp.Code)
	out := decode(t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, domain.BookingInProgress, out.Booking.Status)
}

func TestHandler_UpdateBookingStatus_Errors(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		status string
		setup  func(*MockBookingRepository)
		code   int
		errMsg string
	}{
		{name: "anonymous", status: "confirmed", code: http.StatusUnauthorized},
		{name: "client", role: "client", status: "confirmed", code: http.StatusForbidden},
		{name: "chef", role: "chef", status: "confirmed", code: http.StatusForbidden},
		{
			name:   "unknown status",
			role:   "admin",
			status: "archived",
			code:   http.StatusBadRequest,
			errMsg: "pending, confirmed, in_progress, completed, canceled",
		},
		{
			name:   "missing booking",
			role:   "admin",
			status: "canceled",
			setup: func(r *MockBookingRepository) {
				r.On("UpdateStatus", mock.Anything, "b-1", domain.BookingCanceled).Return(nil, repository.ErrNotFound)
			},
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupRouter(t)
			if tt.setup != nil {
				tt.setup(env.repo)
			}
			token := ""
			if tt.role != "" {
				token = env.token(t, tt.role)
			}

			resp := performRequest(env.router, http.MethodPatch, "/api/v1/admin/bookings/b-1",
				map[string]string{"status": tt.status}, token)

			require.Equal(t, tt.code, resp.Code)
			out := decode(t, resp)
			assert.False(t, out.Success)
			if tt.errMsg != "" {
				assert.Contains(t, out.Error, tt.errMsg)
			}
		})
	}
}

func TestHandler_Check(t *testing.T) {
	env := setupRouter(t)

	assert.Equal(t, http.StatusOK, performRequest(env.router, http.MethodGet, "/api/v1/admin/check", nil, env.token(t, "admin")).Code)
	assert.Equal(t, http.StatusForbidden, performRequest(env.router, http.MethodGet, "/api/v1/admin/check", nil, env.token(t, "client")).Code)
	assert.Equal(t, http.StatusUnauthorized, performRequest(env.router, http.MethodGet, "/api/v1/admin/check", nil, "").Code)
}

func TestHandler_ListBookings(t *testing.T) {
	env := setupRouter(t)
	env.repo.On("List", mock.Anything, repository.BookingFilter{Limit: 20}).
		Return([]domain.Booking{{ID: "b-1"}, {ID: "b-2"}}, int64(2), nil)

	resp := performRequest(env.router, http.MethodGet, "/api/v1/admin/bookings", nil, env.token(t, "admin"))

	require.Equal(t, http.StatusOK, resp.Code)
	var out struct {
		Bookings []domain.Booking `json:"bookings"`
		Total    int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Len(t, out.Bookings, 2)
	assert.Equal(t, int64(2), out.Total)
}

func TestHandler_StreamBookings_DeliversEvents(t *testing.T) {
	env := setupRouter(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/admin/bookings/stream?token=" + env.token(t, "admin")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	b := &domain.Booking{ID: "b-7", ClientID: "c-1", Status: domain.BookingPending}
	require.NoError(t, env.hub.PublishBookingEvent(context.Background(),
		events.NewBookingEvent(events.TypeBookingCreated, b, time.Now())))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got events.BookingEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, events.TypeBookingCreated, got.Type)
	assert.Equal(t, "b-7", got.BookingID)
}

func TestHandler_StreamBookings_RejectsNonAdmin(t *testing.T) {
	env := setupRouter(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/admin/bookings/stream?token=" + env.token(t, "client")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
