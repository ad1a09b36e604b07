package onboarding

import (
	"net/http"

	"foodie/internal/middleware"
	"foodie/internal/pkg/apperr"
	"foodie/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	ob := rg.Group("/chef/onboarding")
	{
		ob.GET("", h.Status)
		ob.PATCH("/draft", h.UpdateDraft)
		ob.POST("/sla/scrolled", h.MarkSLAScrolled)
		ob.POST("/dry-run", h.RecordDryRun)
		ob.POST("/next", h.Next)
		ob.POST("/back", h.Back)
		ob.POST("/retry", h.Retry)
	}
}

func (h *Handler) Status(c *gin.Context) {
	out, err := h.service.Status(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if out.Onboarded {
		response.Success(c, http.StatusOK, gin.H{"onboarded": true, "redirect": out.Redirect})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"onboarded": false, "wizard": out.Wizard})
}

func (h *Handler) UpdateDraft(c *gin.Context) {
	if middleware.IdentityFrom(c) == nil {
		response.FromError(c, apperr.Unauthorized())
		return
	}

	var patch DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.respond(c)(h.service.UpdateDraft(c.Request.Context(), middleware.IdentityFrom(c), patch))
}

func (h *Handler) MarkSLAScrolled(c *gin.Context) {
	h.respond(c)(h.service.MarkSLAScrolled(c.Request.Context(), middleware.IdentityFrom(c)))
}

func (h *Handler) RecordDryRun(c *gin.Context) {
	if middleware.IdentityFrom(c) == nil {
		response.FromError(c, apperr.Unauthorized())
		return
	}

	var req DryRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "accepted is required")
		return
	}
	h.respond(c)(h.service.RecordDryRun(c.Request.Context(), middleware.IdentityFrom(c), *req.Accepted))
}

func (h *Handler) Next(c *gin.Context) {
	h.respond(c)(h.service.Next(c.Request.Context(), middleware.IdentityFrom(c)))
}

func (h *Handler) Back(c *gin.Context) {
	h.respond(c)(h.service.Back(c.Request.Context(), middleware.IdentityFrom(c)))
}

func (h *Handler) Retry(c *gin.Context) {
	h.respond(c)(h.service.Retry(c.Request.Context(), middleware.IdentityFrom(c)))
}

func (h *Handler) respond(c *gin.Context) func(*View, error) {
	return func(view *View, err error) {
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"wizard": view})
	}
}
