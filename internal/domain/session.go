package domain

import (
	"context"
	"time"
)

// Session is the authenticated user context issued by the identity provider.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// SessionProvider supplies the current session and the sign-in/sign-out
// primitives. Implementations own the session lifecycle entirely.
type SessionProvider interface {
	// Authenticate resolves a session token. It returns ErrInvalidCredentials
	// for unknown or expired tokens.
	Authenticate(ctx context.Context, token string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, sess *Session) error
}
