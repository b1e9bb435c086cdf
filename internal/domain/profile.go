package domain

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

// ProfileFields are the editable contact and business fields of a profile.
// Every field is always present; an unset value is the empty string.
type ProfileFields struct {
	FullName       string `json:"full_name" form:"full_name" validate:"max=255"`
	Username       string `json:"username" form:"username" validate:"max=255"` // shown as the email address
	Website        string `json:"website" form:"website" validate:"max=2048"`   // LinkedIn profile URL
	BillingAddress string `json:"billing_address" form:"billing_address" validate:"max=255"`
	PhoneNumber    string `json:"phone_number" form:"phone_number" validate:"max=255"`
	CompanyName    string `json:"company_name" form:"company_name" validate:"max=255"`
}

// Validate checks the field limits.
func (f ProfileFields) Validate() error {
	if err := validatorInstance.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	return nil
}

// Profile is the persisted per-user record keyed by the user identifier.
type Profile struct {
	UserID string `json:"user_id"`
	ProfileFields
}

// ProfileRepository defines the contract for profile storage operations.
type ProfileRepository interface {
	// GetProfile returns ErrNotFound when the user has no profile row.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// UpdateProfile replaces all editable fields of the user's profile.
	// It returns ErrNotFound when no profile row matched.
	UpdateProfile(ctx context.Context, userID string, fields ProfileFields) error

	// CreateProfile inserts the profile row of an account. A row that already
	// exists is left untouched.
	CreateProfile(ctx context.Context, profile *Profile) error
}
