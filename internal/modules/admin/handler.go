package admin

import (
	"net/http"

	"foodie/internal/middleware"
	"foodie/internal/pkg/apperr"
	"foodie/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service  *Service
	hub      *Hub
	verifier middleware.TokenVerifier
	log      *zap.Logger
}

func NewHandler(service *Service, hub *Hub, verifier middleware.TokenVerifier, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{service: service, hub: hub, verifier: verifier, log: log}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/check", h.Check)
	admin.GET("/bookings", h.ListBookings)
	admin.PATCH("/bookings/:id", h.UpdateBookingStatus)
	admin.GET("/bookings/stream", h.StreamBookings)
}

// Check answers whether the caller holds the admin role.
func (h *Handler) Check(c *gin.Context) {
	if err := h.service.Authorize(middleware.IdentityFrom(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

// UpdateBookingStatus handles PATCH /admin/bookings/:id.
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	caller := middleware.IdentityFrom(c)
	if err := h.service.Authorize(caller); err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), caller, c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	out, total, err := h.service.ListBookings(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": out, "total": total})
}

// StreamBookings upgrades to a websocket that receives every booking event.
// Browsers cannot set headers on a websocket handshake, so the token may
// also arrive as ?token=.
func (h *Handler) StreamBookings(c *gin.Context) {
	caller := middleware.IdentityFrom(c)
	if caller == nil && h.verifier != nil {
		if token := c.Query("token"); token != "" {
			id, err := middleware.IdentityFromToken(h.verifier, token)
			if err != nil {
				response.FromError(c, apperr.Unauthorized())
				return
			}
			caller = id
		}
	}
	if err := h.service.Authorize(caller); err != nil {
		response.FromError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("admin feed upgrade failed", zap.Error(err))
		return
	}
	h.hub.ServeWS(conn, caller.UserID)
}
