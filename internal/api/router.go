package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/accounts-system/internal/api/handler"
	"github.com/userhub/accounts-system/internal/api/middleware"
	"github.com/userhub/accounts-system/internal/core/ports"
	"github.com/userhub/accounts-system/internal/core/service"
	infmongo "github.com/userhub/accounts-system/internal/infrastructure/db/mongo"
	infredis "github.com/userhub/accounts-system/internal/infrastructure/db/redis"
	"github.com/userhub/accounts-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Constructor failures (empty signing secret, out-of-range bcrypt cost) are
// surfaced so the caller can abort startup.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	hasher, err := service.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := service.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	repo := infmongo.NewAccountRepository(db)
	limiter := infredis.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)
	accounts := service.NewAccountService(repo, hasher, tokens, service.NewUUIDGenerator(), limiter, audit, log)
	accountHandler := handler.NewAccountHandler(accounts)
	bearer := middleware.BearerToken()

	// --- Account routes ---
	e.POST("/users/signup", accountHandler.Signup)
	e.POST("/users/login", accountHandler.Login)
	e.GET("/users", accountHandler.List, bearer)
	e.DELETE("/users/:id", accountHandler.Delete, bearer)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
