package domain

import (
	"context"
	"time"
)

// Subscription is the read-only billing plan projection.
type Subscription struct {
	Name               string `json:"name"`
	CurrentPeriodStart int64  `json:"current_period_start"` // epoch seconds
	CurrentPeriodEnd   int64  `json:"current_period_end"`   // epoch seconds
}

// StartsAt returns the beginning of the current billing period.
func (s Subscription) StartsAt() time.Time {
	return time.Unix(s.CurrentPeriodStart, 0)
}

// EndsAt returns the end of the current billing period.
func (s Subscription) EndsAt() time.Time {
	return time.Unix(s.CurrentPeriodEnd, 0)
}

// SubscriptionDetails is the payload of the subscription endpoint.
// A nil *SubscriptionDetails or a nil Subscription both mean "no subscription".
type SubscriptionDetails struct {
	Subscription *Subscription `json:"subscription"`
}

// Active reports whether the details carry a subscription.
func (d *SubscriptionDetails) Active() bool {
	return d != nil && d.Subscription != nil
}

// SubscriptionFetcher performs the authenticated subscription read.
type SubscriptionFetcher interface {
	FetchSubscriptionDetails(ctx context.Context, sess *Session) (*SubscriptionDetails, error)
}

// SubscriptionStarter triggers the external subscription-purchase flow.
// It is fire-and-forget: implementations report failures through logs only.
type SubscriptionStarter interface {
	StartSubscription(ctx context.Context, sess *Session, planID string)
}
