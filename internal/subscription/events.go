package subscription

import "github.com/nfrund/homejobs/internal/pubsub"

// PurchaseRequest is the payload of a subscription-purchase request.
type PurchaseRequest struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	PlanID    string `json:"plan_id"`
	RequestID string `json:"request_id,omitempty"`
}

// PurchaseRequested is published when a user asks to start or extend a
// subscription.
var PurchaseRequested = pubsub.NewEvent[PurchaseRequest]("billing.subscription.requested")
