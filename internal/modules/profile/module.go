package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/module"
	"github.com/nfrund/homejobs/internal/querycache"
	"github.com/nfrund/homejobs/internal/registry"
)

// ProfileModule serves the profile page under /app/profile.
type ProfileModule struct {
	module.BaseModule
	deps Dependencies
}

// Dependencies holds the services the profile module requires.
type Dependencies struct {
	Profiles          domain.ProfileRepository
	Subscriptions     domain.SubscriptionFetcher
	ProfileCache      *querycache.Cache[*domain.Profile]
	SubscriptionCache *querycache.Cache[*domain.SubscriptionDetails]
	Logger            *slog.Logger
	PlanID            string
	Location          *time.Location
}

func New(deps Dependencies) *ProfileModule {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &ProfileModule{deps: deps}
}

func (m *ProfileModule) Name() string {
	return "profile"
}

// Boot mounts the profile routes. The subscription starter is published by
// the billing module during registration.
func (m *ProfileModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	starter := registry.MustGet(reg, registry.SubscriptionStarterKey)

	h := NewHandler(HandlerConfig{
		Profiles:          NewProfileQuery(m.deps.Profiles, m.deps.ProfileCache),
		Subscriptions:     NewSubscriptionQuery(m.deps.Subscriptions, m.deps.SubscriptionCache),
		SubscriptionCache: m.deps.SubscriptionCache,
		Submitter:         NewSubmitter(m.deps.Profiles, m.deps.ProfileCache, m.deps.Logger),
		Starter:           starter,
		PlanID:            m.deps.PlanID,
		Location:          m.deps.Location,
	})

	m.deps.Logger.Info("Booting ProfileModule: Setting up routes...")
	g.GET("/profile", h.Get)
	g.POST("/profile", h.Post)
	g.GET("/profile/summary", h.Summary)
	g.POST("/profile/subscription", h.Subscribe)
	return nil
}
