package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nfrund/homejobs/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockPublisher) Close() error { return nil }

func TestStarter_StartSubscription(t *testing.T) {
	t.Run("publishes a purchase request", func(t *testing.T) {
		pub := new(mockPublisher)
		var sent pubsub.Message
		pub.On("Publish", mock.Anything, mock.AnythingOfType("pubsub.Message")).
			Run(func(args mock.Arguments) { sent = args.Get(1).(pubsub.Message) }).
			Return(nil).Once()

		ctx := WithRequestID(context.Background(), "req-1")
		NewStarter(pub, nil).StartSubscription(ctx, testSession, "price_copper_weekly")

		pub.AssertExpectations(t)
		assert.Equal(t, "billing.subscription.requested", sent.Topic)
		assert.Equal(t, "u1", sent.UserID)

		var req PurchaseRequest
		require.NoError(t, json.Unmarshal(sent.Payload, &req))
		assert.Equal(t, PurchaseRequest{UserID: "u1", Email: "ada@x.com", PlanID: "price_copper_weekly", RequestID: "req-1"}, req)
	})

	t.Run("swallows publish errors", func(t *testing.T) {
		pub := new(mockPublisher)
		pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus closed")).Once()

		assert.NotPanics(t, func() {
			NewStarter(pub, nil).StartSubscription(context.Background(), testSession, "price_copper_weekly")
		})
		pub.AssertExpectations(t)
	})

	t.Run("does nothing without a session", func(t *testing.T) {
		pub := new(mockPublisher)
		NewStarter(pub, nil).StartSubscription(context.Background(), nil, "price_copper_weekly")
		pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
