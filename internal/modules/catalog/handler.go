package catalog

import (
	"net/http"
	"strconv"

	"foodie/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/experiences", h.ListExperiences)
	r.GET("/experiences/:slug", h.GetExperience)
	r.GET("/experiences/:slug/menus", h.ListMenus)
	r.GET("/menus/:id/meals", h.ListMenuMeals)
	r.GET("/meals/featured", h.FeaturedMeals)
}

func (h *Handler) ListExperiences(c *gin.Context) {
	out, err := h.service.ListExperiences(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"experiences": out})
}

func (h *Handler) GetExperience(c *gin.Context) {
	out, err := h.service.GetExperience(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"experience": out})
}

func (h *Handler) ListMenus(c *gin.Context) {
	out, err := h.service.ListMenus(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"menus": out})
}

func (h *Handler) ListMenuMeals(c *gin.Context) {
	out, err := h.service.ListMenuMeals(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"meals": out})
}

// FeaturedMeals handles GET /meals/featured?limit=.
func (h *Handler) FeaturedMeals(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer")
			return
		}
		limit = v
	}

	out, err := h.service.FeaturedMeals(c.Request.Context(), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"meals": out})
}
