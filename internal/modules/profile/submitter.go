package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/querycache"
	"github.com/nfrund/homejobs/internal/view"
)

// Toast texts for the submit flow.
const (
	MsgProfileUpdated = "Profile updated successfully"
	MsgProfileFailed  = "Failed to update profile"
	MsgSubmitInFlight = "Your changes are already being saved."
)

// Submitter sends form drafts to the profile store. At most one update per
// form instance is pending at a time.
type Submitter struct {
	repo     domain.ProfileRepository
	cache    *querycache.Cache[*domain.Profile]
	logger   *slog.Logger
	inflight sync.Map
}

func NewSubmitter(repo domain.ProfileRepository, cache *querycache.Cache[*domain.Profile], logger *slog.Logger) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{repo: repo, cache: cache, logger: logger}
}

// Submit sends the full draft of f as one update keyed by the session user.
// On success the cached profile is invalidated; on failure the draft is left
// as it was. Outcomes are reported to n and returned.
func (s *Submitter) Submit(ctx context.Context, sess *domain.Session, f *Form, n view.Notifier) error {
	if sess == nil {
		SubmitsTotal.WithLabelValues(outcomeNoAuth).Inc()
		n.Error(MsgProfileFailed)
		return domain.ErrNoSession
	}

	if _, busy := s.inflight.LoadOrStore(f.ID, struct{}{}); busy {
		SubmitsTotal.WithLabelValues(outcomeInFlight).Inc()
		n.Error(MsgSubmitInFlight)
		return domain.ErrSubmitInFlight
	}
	f.setState(StateSubmitting)
	defer func() {
		f.setState(StateIdle)
		s.inflight.Delete(f.ID)
	}()

	draft := f.Draft
	if err := draft.Validate(); err != nil {
		s.logger.Warn("Rejected profile draft", "user_id", sess.UserID, "error", err)
		SubmitsTotal.WithLabelValues(outcomeInvalid).Inc()
		n.Error(MsgProfileFailed)
		return err
	}

	start := time.Now()
	err := s.repo.UpdateProfile(ctx, sess.UserID, draft)
	SubmitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("Error updating profile", "user_id", sess.UserID, "form_id", f.ID, "error", err)
		SubmitsTotal.WithLabelValues(outcomeFailure).Inc()
		n.Error(MsgProfileFailed)
		return fmt.Errorf("update profile: %w", err)
	}

	s.cache.Invalidate(querycache.ProfileKey(sess.UserID))
	SubmitsTotal.WithLabelValues(outcomeSuccess).Inc()
	n.Success(MsgProfileUpdated)
	return nil
}

// IsClientError reports whether err came from the request rather than the
// store.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidDraft) || errors.Is(err, domain.ErrSubmitInFlight) || errors.Is(err, domain.ErrNoSession)
}
