package billing

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/pubsub"
	"github.com/nfrund/homejobs/internal/querycache"
	"github.com/nfrund/homejobs/internal/registry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingModule_PurchaseFlow(t *testing.T) {
	bus := pubsub.NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })

	cache := querycache.New[*domain.SubscriptionDetails](8, time.Minute)
	cache.Add(querycache.SubscriptionKey("u1"), &domain.SubscriptionDetails{})

	m := New(Dependencies{Publisher: bus, Subscriber: bus, SubscriptionCache: cache})
	reg := registry.New(nil)
	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Boot(context.Background(), nil, reg))
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	counter := PurchaseRequestsTotal.WithLabelValues("price_copper_weekly")
	before := testutil.ToFloat64(counter)

	starter := registry.MustGet(reg, registry.SubscriptionStarterKey)
	starter.StartSubscription(context.Background(), &domain.Session{UserID: "u1", Email: "ada@x.com"}, "price_copper_weekly")

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(counter) == before+1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		_, ok := cache.Get(querycache.SubscriptionKey("u1"))
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubscriber_DropsMalformedPayload(t *testing.T) {
	s := NewSubscriber(nil, nil, nil)
	err := s.handlePurchaseRequested(context.Background(), pubsub.Message{Payload: []byte("{")})
	assert.NoError(t, err)
}

func TestStarter_NoSessionPublishesNothing(t *testing.T) {
	bus := pubsub.NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })

	m := New(Dependencies{Publisher: bus, Subscriber: bus})
	reg := registry.New(nil)
	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Boot(context.Background(), nil, reg))
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	counter := PurchaseRequestsTotal.WithLabelValues("plan_without_session")
	registry.MustGet(reg, registry.SubscriptionStarterKey).StartSubscription(context.Background(), nil, "plan_without_session")

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, testutil.ToFloat64(counter))
}
