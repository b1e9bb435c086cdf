package database

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// SessionStore implements domain.SessionProvider on top of SurrealDB.
// Passwords are hashed by the database (argon2) and sessions are opaque
// random tokens stored in the session table.
type SessionStore struct {
	db      *surrealdb.DB
	timeout time.Duration
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *surrealdb.DB, timeout, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, timeout: timeout, ttl: ttl, now: time.Now}
}

type accountRecord struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

type sessionRecord struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}

// SignUp creates a user account and opens a session for it.
func (s *SessionStore) SignUp(ctx context.Context, email, password string) (*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := `CREATE user CONTENT {
		uid: $uid,
		email: $email,
		password: crypto::argon2::generate($password)
	} RETURN uid, email`
	params := map[string]any{
		"uid":      uuid.NewString(),
		"email":    email,
		"password": password,
	}

	account, err := QueryOne[accountRecord](ctx, s.db, query, params)
	if err != nil {
		if isDuplicateError(err) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, WrapError(err, "create user")
	}
	if account == nil {
		return nil, domain.ErrUserAlreadyExists
	}

	return s.openSession(ctx, account)
}

// SignIn verifies the credentials and opens a new session.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := "SELECT uid, email FROM user WHERE email = $email AND crypto::argon2::compare(password, $password)"
	account, err := QueryOne[accountRecord](ctx, s.db, query, map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, WrapError(err, "look up credentials")
	}
	if account == nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.openSession(ctx, account)
}

// Authenticate resolves an unexpired session token.
func (s *SessionStore) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrInvalidCredentials
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := "SELECT user_id, email, <string> expires_at AS expires_at FROM session WHERE token = $token AND expires_at > time::now()"
	rec, err := QueryOne[sessionRecord](ctx, s.db, query, map[string]any{"token": token})
	if err != nil {
		return nil, WrapError(err, "authenticate session")
	}
	if rec == nil {
		return nil, domain.ErrInvalidCredentials
	}

	sess := &domain.Session{Token: token, UserID: rec.UserID, Email: rec.Email}
	if expires, err := time.Parse(time.RFC3339Nano, rec.ExpiresAt); err == nil {
		sess.ExpiresAt = expires
	}
	return sess, nil
}

// SignOut deletes the session. On error the session is left untouched.
func (s *SessionStore) SignOut(ctx context.Context, sess *domain.Session) error {
	if sess == nil {
		return domain.ErrNoSession
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := Execute(ctx, s.db, "DELETE session WHERE token = $token", map[string]any{"token": sess.Token}); err != nil {
		return WrapError(err, "delete session")
	}
	return nil
}

func (s *SessionStore) openSession(ctx context.Context, account *accountRecord) (*domain.Session, error) {
	token, err := generateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}
	expires := s.now().UTC().Add(s.ttl)

	query := `CREATE session CONTENT {
		token: $token,
		user_id: $user_id,
		email: $email,
		expires_at: <datetime> $expires_at
	}`
	err = Execute(ctx, s.db, query, map[string]any{
		"token":      token,
		"user_id":    account.UID,
		"email":      account.Email,
		"expires_at": expires.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, WrapError(err, "create session")
	}

	return &domain.Session{
		Token:     token,
		UserID:    account.UID,
		Email:     account.Email,
		ExpiresAt: expires,
	}, nil
}

// generateSecureToken creates a cryptographically secure random token.
func generateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	var dbErr *DBError
	if errors.As(err, &dbErr) && dbErr.err != nil {
		err = dbErr.err
	}
	msg := err.Error()
	return strings.Contains(msg, "already contains") || strings.Contains(msg, "already exists")
}
