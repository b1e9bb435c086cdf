package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common business logic failures.
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
	ErrNotFound           = errors.New("requested resource not found")

	// ErrNoSession is returned when an operation keyed by the session user is
	// attempted without an authenticated session.
	ErrNoSession = errors.New("no authenticated session")

	// ErrSubmitInFlight is returned when a form instance is submitted while a
	// previous submit of the same instance is still pending.
	ErrSubmitInFlight = errors.New("an update for this form is already in progress")

	// ErrInvalidDraft is returned when a profile draft fails validation.
	ErrInvalidDraft = errors.New("profile draft is invalid")

	// ErrSubscriptionUnavailable is returned when the subscription endpoint
	// could not be read. It is distinct from "no subscription", which is a
	// successful read with a null result.
	ErrSubscriptionUnavailable = errors.New("failed to fetch subscription details")
)
