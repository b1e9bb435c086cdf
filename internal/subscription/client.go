// Package subscription talks to the billing side of the application: the
// subscription-details endpoint and the subscription-purchase flow.
package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nfrund/homejobs/internal/domain"
)

// DefaultMaxRetries is how many times a failed read is retried before the
// error is surfaced.
const DefaultMaxRetries = 3

// Client reads subscription details for the session user.
type Client struct {
	url        string
	httpClient *http.Client
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     *slog.Logger
}

// NewClient returns a Client for the endpoint at url. Each attempt is bounded
// by timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: DefaultMaxRetries,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 250 * time.Millisecond
			bo.MaxElapsedTime = 0
			return bo
		},
		logger: logger,
	}
}

// FetchSubscriptionDetails performs the authenticated GET. A JSON null body
// yields (nil, nil). Any transport failure or non-2xx status is reported as
// domain.ErrSubscriptionUnavailable after the retries are exhausted.
func (c *Client) FetchSubscriptionDetails(ctx context.Context, sess *domain.Session) (*domain.SubscriptionDetails, error) {
	if sess == nil {
		return nil, nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	details, err := backoff.RetryWithData(func() (*domain.SubscriptionDetails, error) {
		return c.fetchOnce(ctx, sess.Token)
	}, bo)
	if err != nil {
		c.logger.Warn("Subscription details read failed", "user_id", sess.UserID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrSubscriptionUnavailable, err)
	}
	return details, nil
}

func (c *Client) fetchOnce(ctx context.Context, token string) (*domain.SubscriptionDetails, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("subscription endpoint returned %s", resp.Status)
	case resp.StatusCode >= 300:
		return nil, backoff.Permanent(fmt.Errorf("subscription endpoint returned %s", resp.Status))
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	var details domain.SubscriptionDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode subscription details: %w", err))
	}
	return &details, nil
}
