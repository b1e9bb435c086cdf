package billing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/module"
	"github.com/nfrund/homejobs/internal/pubsub"
	"github.com/nfrund/homejobs/internal/querycache"
	"github.com/nfrund/homejobs/internal/registry"
	"github.com/nfrund/homejobs/internal/subscription"
)

// BillingModule owns the subscription-purchase flow.
type BillingModule struct {
	module.BaseModule
	publisher         pubsub.Publisher
	subscriber        pubsub.Subscriber
	subscriptionCache *querycache.Cache[*domain.SubscriptionDetails]
	logger            *slog.Logger
	cancel            context.CancelFunc
}

// Dependencies holds the services the billing module requires.
type Dependencies struct {
	Publisher         pubsub.Publisher
	Subscriber        pubsub.Subscriber
	SubscriptionCache *querycache.Cache[*domain.SubscriptionDetails]
	Logger            *slog.Logger
}

func New(deps Dependencies) *BillingModule {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BillingModule{
		publisher:         deps.Publisher,
		subscriber:        deps.Subscriber,
		subscriptionCache: deps.SubscriptionCache,
		logger:            logger,
	}
}

func (m *BillingModule) Name() string {
	return "billing"
}

// Register publishes the subscription starter for other modules.
func (m *BillingModule) Register(reg *registry.Registry) error {
	registry.Set[domain.SubscriptionStarter](reg, registry.SubscriptionStarterKey, subscription.NewStarter(m.publisher, m.logger))
	return nil
}

// Boot starts the purchase-request subscriber. Billing has no routes of its own.
func (m *BillingModule) Boot(ctx context.Context, _ *echo.Group, _ *registry.Registry) error {
	ctx, m.cancel = context.WithCancel(ctx)
	if err := NewSubscriber(m.subscriber, m.subscriptionCache, m.logger).Start(ctx); err != nil {
		m.cancel()
		return fmt.Errorf("start billing subscriber: %w", err)
	}
	return nil
}

func (m *BillingModule) Shutdown(ctx context.Context) error {
	m.logger.Info("Shutting down BillingModule...")
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
