// Package server assembles repositories, services and handlers into the HTTP
// router served by cmd/api and exercised by the end-to-end tests.
package server

import (
	"net/http"
	"time"

	"foodie/internal/events"
	"foodie/internal/middleware"
	"foodie/internal/modules/admin"
	"foodie/internal/modules/booking"
	"foodie/internal/modules/catalog"
	"foodie/internal/modules/onboarding"
	"foodie/internal/pkg/besteffort"
	"foodie/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Tokens      middleware.TokenVerifier
	Publisher   events.Publisher
	SideEffects besteffort.Runner
	Cache       catalog.Cache
	Hub         *admin.Hub
	Log         *zap.Logger

	CORSAllowedOrigins []string
	RateLimitPerMinute int
}

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Hub == nil {
		d.Hub = admin.NewHub(d.Log)
	}
	if d.Publisher == nil {
		d.Publisher = d.Hub
	}
	if d.SideEffects == nil {
		d.SideEffects = besteffort.Inline{Log: d.Log}
	}

	experienceRepo := repository.NewExperienceRepository(d.DB)
	menuRepo := repository.NewMenuRepository(d.DB)
	mealRepo := repository.NewMealRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	chefRepo := repository.NewChefRepository(d.DB)

	catalogHandler := catalog.NewHandler(
		catalog.NewService(experienceRepo, menuRepo, mealRepo, d.Cache, d.Log.Named("catalog")),
	)
	bookingHandler := booking.NewHandler(
		booking.NewService(bookingRepo, menuRepo, mealRepo, d.Publisher, d.SideEffects, d.Log.Named("booking")),
	)
	onboardingHandler := onboarding.NewHandler(
		onboarding.NewService(chefRepo, onboarding.NewSessionStore(), d.Log.Named("onboarding")),
	)
	adminHandler := admin.NewHandler(
		admin.NewService(bookingRepo, d.Publisher, d.SideEffects, d.Log.Named("admin")),
		d.Hub,
		d.Tokens,
		d.Log.Named("admin"),
	)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	if len(d.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(d.CORSAllowedOrigins))
	}
	if d.RateLimitPerMinute > 0 {
		r.Use(middleware.RateLimit(d.RateLimitPerMinute, d.Log))
	}

	r.GET("/health", healthHandler(d.DB))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.Authenticate(d.Tokens))
	{
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		onboardingHandler.RegisterRoutes(v1)
		adminHandler.RegisterRoutes(v1.Group("/admin"))
	}

	return r
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
		})
	}
}
