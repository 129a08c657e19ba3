package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luminett/booking-api/internal/api"
	"github.com/luminett/booking-api/internal/api/ws"
	"github.com/luminett/booking-api/internal/core/mail"
	"github.com/luminett/booking-api/internal/core/service"
	"github.com/luminett/booking-api/internal/infrastructure/config"
	mongodb "github.com/luminett/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/luminett/booking-api/internal/infrastructure/db/redis"
	smtpmail "github.com/luminett/booking-api/internal/infrastructure/mail"
	"github.com/luminett/booking-api/internal/infrastructure/queue"
	"github.com/luminett/booking-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.Init(logger.Options{Level: os.Getenv("LOG_LEVEL"), Pretty: os.Getenv("ENV") == "development"})
	cfg := config.Load(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	orderRepo := mongodb.NewOrderRepository(db)
	quoteRepo := mongodb.NewQuoteRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{orderRepo, quoteRepo, clientRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Mail pipeline ---
	sender, err := smtpmail.NewSMTPSender(cfg.SMTP)
	if err != nil {
		log.Fatal().Err(err).Msg("smtp sender init failed")
	}
	dispatcher := queue.NewDispatcher(cfg.SMTP.Workers, sender, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	composer := mail.Composer{AdminEmail: cfg.Admin.Email, SiteURL: cfg.SiteURL}
	hub := ws.NewHub(log)
	defer hub.Close()

	orderService := service.NewOrderService(orderRepo, hub, dispatcher, composer, log)
	quoteService := service.NewQuoteService(quoteRepo, hub, dispatcher, composer, log)
	authService := service.NewAuthService(clientRepo, redisdb.NewLoginLimiter(rdb),
		cfg.JWTSecret, cfg.Admin.Email, cfg.Admin.Password, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Orders:    orderService,
		Quotes:    quoteService,
		Auth:      authService,
		Hub:       hub,
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
