package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/homejobs/internal/config"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/handlers"
	"github.com/nfrund/homejobs/internal/middleware"
	"github.com/nfrund/homejobs/internal/module"
	"github.com/nfrund/homejobs/internal/registry"
	"github.com/nfrund/homejobs/internal/rendering"
	"github.com/prometheus/client_golang/prometheus"
)

// Server holds the echo instance and everything the routes need.
type Server struct {
	E        *echo.Echo
	cfg      config.Provider
	logger   *slog.Logger
	sessions domain.SessionProvider
	profiles domain.ProfileRepository
	modules  []module.Module
	registry *registry.Registry
	gatherer prometheus.Gatherer

	shutdownOnce sync.Once
	shutdownErr  error
}

// Dependencies holds the services the server wires into its routes.
type Dependencies struct {
	Config   config.Provider
	Logger   *slog.Logger
	Sessions domain.SessionProvider
	Profiles domain.ProfileRepository
	Modules  []module.Module
	Registry *registry.Registry

	// Registerer and Gatherer back the request metrics and /metrics. They
	// default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// New builds the echo instance with the shared middleware chain. Routes are
// added by RegisterRoutes.
func New(deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	reg := deps.Registry
	if reg == nil {
		reg = registry.New(deps.Config)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "homejobs",
		Registerer: registerer,
	}))

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(deps.Config.GetSessionTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(middleware.Session(deps.Sessions))

	return &Server{
		E:        e,
		cfg:      deps.Config,
		logger:   logger,
		sessions: deps.Sessions,
		profiles: deps.Profiles,
		modules:  deps.Modules,
		registry: reg,
		gatherer: gatherer,
	}
}
