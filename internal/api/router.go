package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luminett/booking-api/internal/api/handler"
	"github.com/luminett/booking-api/internal/api/middleware"
	"github.com/luminett/booking-api/internal/api/ws"
	"github.com/luminett/booking-api/internal/core/domain"
	"github.com/luminett/booking-api/internal/core/ports"
)

// Dependencies bundles everything the router needs. All fields are required.
type Dependencies struct {
	Orders    ports.OrderService
	Quotes    ports.QuoteService
	Auth      ports.AuthService
	Hub       *ws.Hub
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Dependencies ---
	orderHandler := handler.NewOrderHandler(deps.Orders)
	quoteHandler := handler.NewQuoteHandler(deps.Quotes)
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := middleware.Auth(deps.JWTSecret)

	// --- Public routes ---
	e.POST("/orders", orderHandler.Create)
	e.GET("/orders/by-email", orderHandler.ListByEmail)
	e.POST("/auth/login", authHandler.AdminLogin)
	e.POST("/client/login", authHandler.ClientLogin)
	e.POST("/client/register", authHandler.Register)

	// --- Admin routes ---
	admin := e.Group("", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/orders", orderHandler.List)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.DELETE("/orders/:id", orderHandler.Delete)
	admin.GET("/stats", orderHandler.Stats)
	admin.POST("/quotes", quoteHandler.Create)
	admin.GET("/quotes", quoteHandler.List)
	admin.PATCH("/quotes/:id/status", quoteHandler.UpdateStatus)
	admin.DELETE("/quotes/:id", quoteHandler.Delete)

	// --- Client routes ---
	client := e.Group("/client", auth, middleware.RBAC(domain.RoleClient))
	client.GET("/orders", orderHandler.ListMine)
	client.GET("/quotes", quoteHandler.ListMine)
	client.PATCH("/quotes/:id/sign", quoteHandler.Sign)

	// --- Live updates (admin dashboards only; broadcasts carry every client's data) ---
	e.GET("/ws", deps.Hub.Handle, auth, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
