// Package app assembles the application object graph.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/homejobs/internal/config"
	"github.com/nfrund/homejobs/internal/database"
	"github.com/nfrund/homejobs/internal/database/psql"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/logging"
	"github.com/nfrund/homejobs/internal/module"
	"github.com/nfrund/homejobs/internal/modules/billing"
	"github.com/nfrund/homejobs/internal/modules/profile"
	"github.com/nfrund/homejobs/internal/pubsub"
	"github.com/nfrund/homejobs/internal/querycache"
	"github.com/nfrund/homejobs/internal/registry"
	"github.com/nfrund/homejobs/internal/server"
	"github.com/nfrund/homejobs/internal/subscription"
	"github.com/samber/do/v2"
)

// App owns the dependency injector. Services are built lazily on first use
// and shut down in reverse dependency order.
type App struct {
	injector *do.RootScope
}

// New registers every service provider. Nothing is connected until a service
// is first requested.
func New(cfg config.Provider) *App {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.Provide(i, provideLogger)
	do.Provide(i, provideSurreal)
	do.Provide(i, providePostgres)
	do.Provide(i, provideSessions)
	do.Provide(i, provideProfiles)
	do.Provide(i, provideProfileCache)
	do.Provide(i, provideSubscriptionCache)
	do.Provide(i, provideEventBus)
	do.Provide(i, provideSubscriptionFetcher)
	do.Provide(i, provideModules)
	do.Provide(i, provideServer)

	return &App{injector: i}
}

// Server builds, on first call, the HTTP server and everything it depends on.
func (a *App) Server() (*server.Server, error) {
	return do.Invoke[*server.Server](a.injector)
}

// Shutdown stops every service that was built.
func (a *App) Shutdown() error {
	report := a.injector.Shutdown()
	if report != nil && !report.Succeed {
		return fmt.Errorf("shutdown incomplete: %+v", report)
	}
	return nil
}

func provideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return logging.New(cfg.GetLogFormat(), cfg.GetLogLevel()), nil
}

func provideSurreal(i do.Injector) (*surrealConn, error) {
	cfg := do.MustInvoke[config.Provider](i)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetDBQueryTimeout())
	defer cancel()

	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		db.Close(context.Background())
		return nil, err
	}
	return &surrealConn{DB: db}, nil
}

func provideSessions(i do.Injector) (domain.SessionProvider, error) {
	cfg := do.MustInvoke[config.Provider](i)
	conn, err := do.Invoke[*surrealConn](i)
	if err != nil {
		return nil, err
	}
	return database.NewSessionStore(conn.DB, cfg.GetDBQueryTimeout(), cfg.GetSessionTTL()), nil
}

// provideProfiles selects the profile store named by PROFILE_BACKEND.
func provideProfiles(i do.Injector) (domain.ProfileRepository, error) {
	cfg := do.MustInvoke[config.Provider](i)

	if cfg.GetProfileBackend() != config.BackendPostgres {
		conn, err := do.Invoke[*surrealConn](i)
		if err != nil {
			return nil, err
		}
		return database.NewProfileStore(conn.DB, cfg.GetDBQueryTimeout()), nil
	}

	pool, err := do.Invoke[*pgPool](i)
	if err != nil {
		return nil, err
	}
	return psql.NewProfileRepository(pool.Pool), nil
}

func providePostgres(i do.Injector) (*pgPool, error) {
	cfg := do.MustInvoke[config.Provider](i)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetDBQueryTimeout())
	defer cancel()

	pool, err := psql.Connect(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, err
	}
	if err := psql.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &pgPool{Pool: pool}, nil
}

func provideProfileCache(i do.Injector) (*querycache.Cache[*domain.Profile], error) {
	cfg := do.MustInvoke[config.Provider](i)
	return querycache.New[*domain.Profile](cfg.GetQueryCacheSize(), cfg.GetQueryCacheTTL()), nil
}

func provideSubscriptionCache(i do.Injector) (*querycache.Cache[*domain.SubscriptionDetails], error) {
	cfg := do.MustInvoke[config.Provider](i)
	return querycache.New[*domain.SubscriptionDetails](cfg.GetQueryCacheSize(), cfg.GetQueryCacheTTL()), nil
}

func provideEventBus(i do.Injector) (*eventBus, error) {
	logger := do.MustInvoke[*slog.Logger](i)
	return &eventBus{WatermillBridge: pubsub.NewWatermillBridge(logger)}, nil
}

func provideSubscriptionFetcher(i do.Injector) (domain.SubscriptionFetcher, error) {
	cfg := do.MustInvoke[config.Provider](i)
	logger := do.MustInvoke[*slog.Logger](i)
	return subscription.NewClient(cfg.GetSubscriptionAPIURL(), cfg.GetSubscriptionTimeout(), logger), nil
}

// provideModules lists the active application modules. Billing comes first
// because it publishes the subscription starter the profile module uses.
func provideModules(i do.Injector) ([]module.Module, error) {
	cfg := do.MustInvoke[config.Provider](i)
	logger := do.MustInvoke[*slog.Logger](i)
	bus, err := do.Invoke[*eventBus](i)
	if err != nil {
		return nil, err
	}
	profiles, err := do.Invoke[domain.ProfileRepository](i)
	if err != nil {
		return nil, err
	}
	subCache := do.MustInvoke[*querycache.Cache[*domain.SubscriptionDetails]](i)

	return []module.Module{
		billing.New(billing.Dependencies{
			Publisher:         bus,
			Subscriber:        bus,
			SubscriptionCache: subCache,
			Logger:            logger.With("module", "billing"),
		}),
		profile.New(profile.Dependencies{
			Profiles:          profiles,
			Subscriptions:     do.MustInvoke[domain.SubscriptionFetcher](i),
			ProfileCache:      do.MustInvoke[*querycache.Cache[*domain.Profile]](i),
			SubscriptionCache: subCache,
			Logger:            logger.With("module", "profile"),
			PlanID:            cfg.GetSubscriptionPlanID(),
			Location:          cfg.GetDisplayLocation(),
		}),
	}, nil
}

func provideServer(i do.Injector) (*server.Server, error) {
	cfg := do.MustInvoke[config.Provider](i)
	sessions, err := do.Invoke[domain.SessionProvider](i)
	if err != nil {
		return nil, err
	}
	profiles, err := do.Invoke[domain.ProfileRepository](i)
	if err != nil {
		return nil, err
	}
	modules, err := do.Invoke[[]module.Module](i)
	if err != nil {
		return nil, err
	}

	return server.New(server.Dependencies{
		Config:   cfg,
		Logger:   do.MustInvoke[*slog.Logger](i),
		Sessions: sessions,
		Profiles: profiles,
		Modules:  modules,
		Registry: registry.New(cfg),
	}), nil
}
