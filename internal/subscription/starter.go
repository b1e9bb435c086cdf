package subscription

import (
	"context"
	"log/slog"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/pubsub"
)

// Starter hands subscription purchases off to the billing module over the
// event bus. It implements domain.SubscriptionStarter.
type Starter struct {
	publisher pubsub.Publisher
	logger    *slog.Logger
}

func NewStarter(publisher pubsub.Publisher, logger *slog.Logger) *Starter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Starter{publisher: publisher, logger: logger}
}

// StartSubscription publishes a purchase request for planID. Failures are
// logged and otherwise dropped.
func (s *Starter) StartSubscription(ctx context.Context, sess *domain.Session, planID string) {
	if sess == nil {
		s.logger.Warn("Subscription requested without a session", "plan_id", planID)
		return
	}

	req := PurchaseRequest{
		UserID: sess.UserID,
		Email:  sess.Email,
		PlanID: planID,
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		req.RequestID = id
	}

	if err := pubsub.Publish(ctx, s.publisher, PurchaseRequested, sess.UserID, req); err != nil {
		s.logger.Error("Failed to publish subscription request", "user_id", sess.UserID, "plan_id", planID, "error", err)
		return
	}
	s.logger.Info("Subscription requested", "user_id", sess.UserID, "plan_id", planID)
}

type requestIDKey struct{}

// WithRequestID attaches the originating request id to ctx so it travels with
// the purchase request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
