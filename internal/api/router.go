package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/api/handler"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/api/middleware"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/http/handlers"

	_ "github.com/AjayKumar-j-s/Cloth-Management/docs"
)

// RouterConfig carries the HTTP settings that are not services.
type RouterConfig struct {
	JWTSecret      string
	AllowOrigins   []string
	DocumentURLTTL time.Duration
	// BodyLimit caps request bodies, uploads included, e.g. "20M".
	BodyLimit string
}

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth      ports.AuthService
	Clients   ports.ClientService
	Reminders ports.ReminderService
	Readiness *handlers.ReadinessHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, svc Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: cfg.AllowOrigins}))
	if cfg.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(cfg.BodyLimit))
	}
	e.Use(echoprometheus.NewMiddleware("clients"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	clientHandler := handler.NewClientHandler(svc.Clients, cfg.DocumentURLTTL)
	reminderHandler := handler.NewReminderHandler(svc.Reminders, log)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register, authMiddleware, middleware.AdminOnly())

	// --- Client routes ---
	apiGroup := e.Group("/api", authMiddleware)

	clients := apiGroup.Group("/clients")
	clients.GET("/all", clientHandler.List, middleware.AnyOperator())
	clients.GET("/chart", clientHandler.Chart, middleware.AnyOperator())
	clients.GET("/unpaid", clientHandler.Unpaid, middleware.AnyOperator())
	clients.GET("/export", clientHandler.Export, middleware.AnyOperator())
	clients.GET("/:id", clientHandler.Get, middleware.AnyOperator())
	clients.GET("/:id/documents/:kind", clientHandler.Document, middleware.AnyOperator())
	clients.POST("/add", clientHandler.Create, middleware.AdminOnly())
	clients.PUT("/:id", clientHandler.Update, middleware.AdminOnly())
	clients.DELETE("/:id", clientHandler.Delete, middleware.AdminOnly())
	clients.POST("/:id/send-reminder", reminderHandler.SendReminder, middleware.AdminOnly())

	apiGroup.POST("/reminders/scan", reminderHandler.RunScan, middleware.AdminOnly())

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if svc.Readiness != nil {
		e.GET("/health/ready", svc.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
