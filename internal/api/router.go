package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/omnicorp/fieldops-api/internal/api/handler"
	"github.com/omnicorp/fieldops-api/internal/api/middleware"
	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

// Dependencies carries the constructed services and shared clients the router wires up.
type Dependencies struct {
	Identity  ports.IdentityService
	Orders    ports.OrderService
	Assistant ports.AssistantService
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("fieldops"))

	authHandler := handler.NewAuthHandler(deps.Identity)
	userHandler := handler.NewUserHandler(deps.Identity)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	assistantHandler := handler.NewAssistantHandler(deps.Assistant)

	authMiddleware := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(string(domain.RoleAdmin))

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Staff management (admin only) ---
	users := e.Group("/v1/users", authMiddleware, adminOnly)
	users.GET("", userHandler.List)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Work orders ---
	orders := e.Group("/v1/orders", authMiddleware)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)
	orders.POST("/:id/complete", orderHandler.Complete)
	orders.POST("", orderHandler.Create, adminOnly)
	orders.PUT("/:id", orderHandler.Edit, adminOnly)
	orders.DELETE("/:id", orderHandler.Delete, adminOnly)

	// --- External schedule URL ---
	e.GET("/v1/schedule-url", orderHandler.GetScheduleURL, authMiddleware)
	e.PUT("/v1/schedule-url", orderHandler.UpdateScheduleURL, authMiddleware, adminOnly)

	// --- Assistant ---
	assistant := e.Group("/v1/assistant", authMiddleware)
	assistant.POST("/chat", assistantHandler.Chat)
	assistant.POST("/evidence", assistantHandler.AnalyzeEvidence)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
