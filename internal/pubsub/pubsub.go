// Package pubsub carries in-process domain events between modules.
package pubsub

import (
	"context"
)

// Message is what travels on the bus.
type Message struct {
	// Topic names the event, e.g. "billing.subscription.requested".
	Topic string
	// UserID is the user the event concerns.
	UserID string
	// Payload is the JSON-encoded event body.
	Payload []byte
	// Metadata carries extra string attributes such as the request id.
	Metadata map[string]string
}

// Handler processes one received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber receives messages from the bus.
type Subscriber interface {
	// Subscribe registers handler for topic and returns once the subscription
	// is active. Delivery stops when ctx is canceled or the bus is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
