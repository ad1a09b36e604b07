package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodie/internal/config"
	"foodie/internal/database"
	"foodie/internal/events"
	"foodie/internal/modules/admin"
	"foodie/internal/modules/catalog"
	"foodie/internal/pkg/besteffort"
	jwtsvc "foodie/internal/pkg/jwt"
	"foodie/internal/pkg/logger"
	"foodie/internal/repository"
	"foodie/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("database migrate failed", zap.Error(err))
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicPrefix, log.Named("kafka"))
	if err != nil {
		log.Fatal("kafka producer init failed", zap.Error(err))
	}
	defer func() { _ = producer.Close() }()

	var cache catalog.Cache = catalog.NoCache{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, catalog reads go straight to the database", zap.Error(err))
		}
		cancel()
		cache = catalog.NewRedisCache(rdb, cfg.CatalogCacheTTL)
	}

	hub := admin.NewHub(log.Named("admin-feed"))
	defer hub.Close()

	sideEffects := besteffort.NewDetached(cfg.SideEffectTimeout, log.Named("side-effects"))

	router := server.NewRouter(server.Deps{
		DB:                 db,
		Tokens:             jwtsvc.New(cfg.JWTSecret, cfg.JWTDevTTL),
		Publisher:          events.Fanout{producer, hub},
		SideEffects:        sideEffects,
		Cache:              cache,
		Hub:                hub,
		Log:                log,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	// let in-flight popularity updates and event publishes finish
	sideEffects.Wait()
	log.Info("shutdown complete")
}
