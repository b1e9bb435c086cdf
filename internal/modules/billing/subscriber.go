package billing

import (
	"context"
	"log/slog"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/pubsub"
	"github.com/nfrund/homejobs/internal/querycache"
	"github.com/nfrund/homejobs/internal/subscription"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PurchaseRequestsTotal counts subscription-purchase requests by plan.
var PurchaseRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "homejobs",
		Name:      "subscription_purchase_requests_total",
		Help:      "Total number of subscription purchase requests by plan",
	},
	[]string{"plan_id"},
)

// Subscriber receives purchase requests from the bus. Checkout happens with
// the payment provider; here the request is recorded and the user's cached
// subscription details are dropped so the next billing view refetches.
type Subscriber struct {
	subscriber pubsub.Subscriber
	cache      *querycache.Cache[*domain.SubscriptionDetails]
	logger     *slog.Logger
}

func NewSubscriber(sub pubsub.Subscriber, cache *querycache.Cache[*domain.SubscriptionDetails], logger *slog.Logger) *Subscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subscriber{subscriber: sub, cache: cache, logger: logger}
}

// Start subscribes to purchase requests. Delivery stops when ctx is canceled.
func (s *Subscriber) Start(ctx context.Context) error {
	s.logger.Info("Starting billing subscriber", "topic", subscription.PurchaseRequested.Name())
	return s.subscriber.Subscribe(ctx, subscription.PurchaseRequested.Name(), s.handlePurchaseRequested)
}

func (s *Subscriber) handlePurchaseRequested(ctx context.Context, msg pubsub.Message) error {
	req, err := subscription.PurchaseRequested.Decode(msg)
	if err != nil {
		// Malformed payloads are dropped rather than redelivered.
		s.logger.Warn("Dropping malformed purchase request", "error", err)
		return nil
	}

	PurchaseRequestsTotal.WithLabelValues(req.PlanID).Inc()
	if s.cache != nil {
		s.cache.Invalidate(querycache.SubscriptionKey(req.UserID))
	}
	s.logger.Info("Subscription purchase requested",
		"user_id", req.UserID,
		"plan_id", req.PlanID,
		"request_id", req.RequestID,
	)
	return nil
}
