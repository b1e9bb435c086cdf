package profile

import (
	"context"
	"errors"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/querycache"
)

// ProfileQuery reads profiles through the query cache.
type ProfileQuery struct {
	repo  domain.ProfileRepository
	cache *querycache.Cache[*domain.Profile]
}

func NewProfileQuery(repo domain.ProfileRepository, cache *querycache.Cache[*domain.Profile]) *ProfileQuery {
	return &ProfileQuery{repo: repo, cache: cache}
}

// Load returns the user's profile. A user without a profile row gets an
// empty one.
func (q *ProfileQuery) Load(ctx context.Context, userID string) (*domain.Profile, error) {
	return q.cache.GetOrLoad(ctx, querycache.ProfileKey(userID), func(ctx context.Context) (*domain.Profile, error) {
		p, err := q.repo.GetProfile(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Profile{UserID: userID}, nil
		}
		return p, err
	})
}

// SubscriptionQuery reads subscription details through the query cache.
// Results are not polled; they refresh when the cache entry expires.
type SubscriptionQuery struct {
	fetcher domain.SubscriptionFetcher
	cache   *querycache.Cache[*domain.SubscriptionDetails]
}

func NewSubscriptionQuery(fetcher domain.SubscriptionFetcher, cache *querycache.Cache[*domain.SubscriptionDetails]) *SubscriptionQuery {
	return &SubscriptionQuery{fetcher: fetcher, cache: cache}
}

// Load returns nil without any remote call when sess is nil.
func (q *SubscriptionQuery) Load(ctx context.Context, sess *domain.Session) (*domain.SubscriptionDetails, error) {
	if sess == nil {
		return nil, nil
	}
	return q.cache.GetOrLoad(ctx, querycache.SubscriptionKey(sess.UserID), func(ctx context.Context) (*domain.SubscriptionDetails, error) {
		return q.fetcher.FetchSubscriptionDetails(ctx, sess)
	})
}
