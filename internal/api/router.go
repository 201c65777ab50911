package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/arthsaathi/finlit-engine/docs"
	"github.com/arthsaathi/finlit-engine/internal/api/handler"
	"github.com/arthsaathi/finlit-engine/internal/api/middleware"
	"github.com/arthsaathi/finlit-engine/internal/core/ports"
	"github.com/arthsaathi/finlit-engine/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Trust    ports.TrustService
	Roadmaps ports.RoadmapService
	Queries  ports.QueryService
	// Readiness is checked by GET /health/ready.
	Readiness *handlers.HealthDependenciesHandler

	// JWTSecret enables bearer auth on /score and /user routes when non-empty.
	JWTSecret      string
	RequestTimeout time.Duration
	Log            zerolog.Logger
	// Registerer receives the HTTP request metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "finlit",
		Registerer: registerer,
	}))
	if deps.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			Timeout: deps.RequestTimeout,
		}))
	}

	// --- Health probes, metrics and docs (no auth required) ---
	readiness := deps.Readiness
	if readiness == nil {
		readiness = handlers.NewHealthDependenciesHandler(deps.Log)
	}
	e.GET("/health", handlers.NewHealthHandler().Liveness) // liveness: is the process alive?
	e.GET("/health/ready", readiness.Readiness)             // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Per-user routes ---
	var guards []echo.MiddlewareFunc
	if deps.JWTSecret != "" {
		guards = append(guards, middleware.Auth(deps.JWTSecret), middleware.RequireOwner())
	}

	scoreHandler := handler.NewScoreHandler(deps.Trust)
	score := e.Group("/score/:userId", guards...)
	score.GET("", scoreHandler.Get)
	score.PUT("", scoreHandler.Put)
	score.POST("/recalculate", scoreHandler.Recalculate)

	roadmapHandler := handler.NewRoadmapHandler(deps.Roadmaps)
	userHandler := handler.NewUserHandler(deps.Queries)
	user := e.Group("/user/:userId", guards...)
	user.POST("", userHandler.Create)
	user.GET("/queries", userHandler.ListQueries)
	user.POST("/queries", userHandler.RecordQuery)
	user.GET("/roadmap", roadmapHandler.Get)
	user.POST("/roadmap", roadmapHandler.Save)
	user.PUT("/roadmap", roadmapHandler.Update)
	user.POST("/roadmap/recommendations", roadmapHandler.Recommendations)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
