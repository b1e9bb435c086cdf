package registry

import (
	"context"
	"testing"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/stretchr/testify/assert"
)

type nopStarter struct{}

func (nopStarter) StartSubscription(context.Context, *domain.Session, string) {}

func TestSetGet(t *testing.T) {
	r := New(nil)

	_, ok := Get(r, SubscriptionStarterKey)
	assert.False(t, ok)

	Set[domain.SubscriptionStarter](r, SubscriptionStarterKey, nopStarter{})
	got, ok := Get(r, SubscriptionStarterKey)
	assert.True(t, ok)
	assert.IsType(t, nopStarter{}, got)
}

func TestMustGetPanics(t *testing.T) {
	r := New(nil)
	assert.Panics(t, func() { MustGet(r, Key[string]("missing")) })
}

func TestMismatchedTypeIsNotFound(t *testing.T) {
	r := New(nil)
	Set(r, Key[string]("shared"), "value")

	_, ok := Get(r, Key[int]("shared"))
	assert.False(t, ok)
}
