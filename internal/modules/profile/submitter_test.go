package profile

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/querycache"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *mockRepo) UpdateProfile(ctx context.Context, userID string, fields domain.ProfileFields) error {
	return m.Called(ctx, userID, fields).Error(0)
}

func (m *mockRepo) CreateProfile(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

// blockingRepo holds UpdateProfile until release is closed.
type blockingRepo struct {
	mockRepo
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRepo) UpdateProfile(ctx context.Context, userID string, fields domain.ProfileFields) error {
	close(b.entered)
	<-b.release
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

var adaSession = &domain.Session{Token: "tok", UserID: "u1", Email: "ada@x.com"}

func newTestSubmitter(repo domain.ProfileRepository) (*Submitter, *querycache.Cache[*domain.Profile]) {
	cache := querycache.New[*domain.Profile](8, time.Minute)
	return NewSubmitter(repo, cache, nil), cache
}

func TestSubmit_SendsFullDraft(t *testing.T) {
	repo := new(mockRepo)
	want := domain.ProfileFields{FullName: "Ada L", Username: "ada@x.com"}
	repo.On("UpdateProfile", mock.Anything, "u1", want).Return(nil).Once()

	s, cache := newTestSubmitter(repo)
	cache.Add(querycache.ProfileKey("u1"), &domain.Profile{UserID: "u1"})

	form := NewForm("f1", &domain.Profile{UserID: "u1", ProfileFields: domain.ProfileFields{FullName: "Ada", Username: "ada@x.com"}}, TabPersonal, adaSession)
	require.NoError(t, form.SetField("full_name", "Ada L"))

	before := testutil.ToFloat64(SubmitsTotal.WithLabelValues(outcomeSuccess))
	n := &recordingNotifier{}
	require.NoError(t, s.Submit(context.Background(), adaSession, form, n))

	repo.AssertExpectations(t)
	assert.Equal(t, []string{MsgProfileUpdated}, n.success)
	assert.Empty(t, n.failures)
	assert.Equal(t, StateIdle, form.State())
	assert.Equal(t, before+1, testutil.ToFloat64(SubmitsTotal.WithLabelValues(outcomeSuccess)))

	_, cached := cache.Get(querycache.ProfileKey("u1"))
	assert.False(t, cached, "profile query should be invalidated")
}

func TestSubmit_NoSession(t *testing.T) {
	repo := new(mockRepo)
	s, _ := newTestSubmitter(repo)
	form := NewForm("f1", nil, TabPersonal, nil)
	n := &recordingNotifier{}

	err := s.Submit(context.Background(), nil, form, n)
	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Equal(t, []string{MsgProfileFailed}, n.failures)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_FailureKeepsDraftAndCache(t *testing.T) {
	repo := new(mockRepo)
	repo.On("UpdateProfile", mock.Anything, "u1", mock.Anything).Return(errors.New("connection reset"))

	s, cache := newTestSubmitter(repo)
	cached := &domain.Profile{UserID: "u1"}
	cache.Add(querycache.ProfileKey("u1"), cached)

	form := NewForm("f1", nil, TabBilling, adaSession)
	require.NoError(t, form.SetField("company_name", "Acme"))
	n := &recordingNotifier{}

	err := s.Submit(context.Background(), adaSession, form, n)
	require.Error(t, err)
	assert.False(t, IsClientError(err))
	assert.Equal(t, "Acme", form.Draft.CompanyName)
	assert.Equal(t, []string{MsgProfileFailed}, n.failures)
	assert.Equal(t, StateIdle, form.State())

	got, ok := cache.Get(querycache.ProfileKey("u1"))
	assert.True(t, ok)
	assert.Same(t, cached, got)
}

func TestSubmit_ZeroRowsIsFailure(t *testing.T) {
	repo := new(mockRepo)
	repo.On("UpdateProfile", mock.Anything, "u1", mock.Anything).Return(domain.ErrNotFound)
	s, _ := newTestSubmitter(repo)
	n := &recordingNotifier{}

	err := s.Submit(context.Background(), adaSession, NewForm("f1", nil, TabPersonal, adaSession), n)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{MsgProfileFailed}, n.failures)
}

func TestSubmit_InvalidDraft(t *testing.T) {
	repo := new(mockRepo)
	s, _ := newTestSubmitter(repo)
	form := NewForm("f1", nil, TabPersonal, adaSession)
	require.NoError(t, form.SetField("full_name", strings.Repeat("a", 300)))

	err := s.Submit(context.Background(), adaSession, form, &recordingNotifier{})
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)
	assert.True(t, IsClientError(err))
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_RejectsWhileInFlight(t *testing.T) {
	repo := &blockingRepo{entered: make(chan struct{}), release: make(chan struct{})}
	s, _ := newTestSubmitter(repo)
	form := NewForm("f1", nil, TabPersonal, adaSession)

	done := make(chan error, 1)
	go func() {
		done <- s.Submit(context.Background(), adaSession, form, &recordingNotifier{})
	}()
	<-repo.entered

	assert.Equal(t, StateSubmitting, form.State())

	n := &recordingNotifier{}
	err := s.Submit(context.Background(), adaSession, form, n)
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.Equal(t, []string{MsgSubmitInFlight}, n.failures)

	close(repo.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, form.State())
}

// slowReadRepo snapshots the stored row when GetProfile starts and returns it
// only after release is closed.
type slowReadRepo struct {
	mockRepo
	mu      sync.Mutex
	stored  domain.ProfileFields
	entered chan struct{}
	release chan struct{}
}

func (r *slowReadRepo) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	snapshot := r.stored
	r.mu.Unlock()
	close(r.entered)
	<-r.release
	return &domain.Profile{UserID: userID, ProfileFields: snapshot}, nil
}

func (r *slowReadRepo) UpdateProfile(ctx context.Context, userID string, fields domain.ProfileFields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = fields
	return nil
}

func TestSubmit_ReadInFlightDoesNotRefillStaleProfile(t *testing.T) {
	repo := &slowReadRepo{
		stored:  domain.ProfileFields{FullName: "Ada", Username: "ada@x.com"},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s, cache := newTestSubmitter(repo)
	query := NewProfileQuery(repo, cache)

	read := make(chan *domain.Profile, 1)
	go func() {
		p, err := query.Load(context.Background(), "u1")
		assert.NoError(t, err)
		read <- p
	}()
	<-repo.entered

	form := NewForm("f1", &domain.Profile{UserID: "u1", ProfileFields: repo.stored}, TabPersonal, adaSession)
	require.NoError(t, form.SetField("full_name", "Ada L"))
	require.NoError(t, s.Submit(context.Background(), adaSession, form, &recordingNotifier{}))

	close(repo.release)
	assert.Equal(t, "Ada", (<-read).FullName)

	_, cached := cache.Get(querycache.ProfileKey("u1"))
	assert.False(t, cached, "a read that overlapped the update must not be cached")
}
