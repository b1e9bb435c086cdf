package database

import (
	"context"
	"errors"
	"time"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// ProfileStore implements domain.ProfileRepository on the SurrealDB profile table.
type ProfileStore struct {
	db      *surrealdb.DB
	timeout time.Duration
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(db *surrealdb.DB, timeout time.Duration) *ProfileStore {
	return &ProfileStore{db: db, timeout: timeout}
}

type profileRecord struct {
	UserID         string `json:"user_id"`
	FullName       string `json:"full_name"`
	Username       string `json:"username"`
	Website        string `json:"website"`
	BillingAddress string `json:"billing_address"`
	PhoneNumber    string `json:"phone_number"`
	CompanyName    string `json:"company_name"`
}

func (r profileRecord) toDomain() *domain.Profile {
	return &domain.Profile{
		UserID: r.UserID,
		ProfileFields: domain.ProfileFields{
			FullName:       r.FullName,
			Username:       r.Username,
			Website:        r.Website,
			BillingAddress: r.BillingAddress,
			PhoneNumber:    r.PhoneNumber,
			CompanyName:    r.CompanyName,
		},
	}
}

// fieldParams maps the editable fields to query parameters.
func fieldParams(f domain.ProfileFields) map[string]any {
	return map[string]any{
		"full_name":       f.FullName,
		"username":        f.Username,
		"website":         f.Website,
		"billing_address": f.BillingAddress,
		"phone_number":    f.PhoneNumber,
		"company_name":    f.CompanyName,
	}
}

// GetProfile loads the profile of a user.
func (s *ProfileStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT user_id, full_name, username, website, billing_address, phone_number, company_name
		FROM profile WHERE user_id = $user_id`
	rec, err := QueryOne[profileRecord](ctx, s.db, query, map[string]any{"user_id": userID})
	if err != nil {
		return nil, WrapError(err, "select profile")
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec.toDomain(), nil
}

// UpdateProfile overwrites all six editable fields in one statement.
func (s *ProfileStore) UpdateProfile(ctx context.Context, userID string, fields domain.ProfileFields) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := `UPDATE profile SET
		full_name = $full_name,
		username = $username,
		website = $website,
		billing_address = $billing_address,
		phone_number = $phone_number,
		company_name = $company_name
	WHERE user_id = $user_id RETURN user_id`
	params := fieldParams(fields)
	params["user_id"] = userID

	updated, err := QueryOne[profileRecord](ctx, s.db, query, params)
	if err != nil {
		return WrapError(err, "update profile")
	}
	if updated == nil {
		return domain.ErrNotFound
	}
	return nil
}

// CreateProfile inserts a profile row unless the user already has one.
func (s *ProfileStore) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	if _, err := s.GetProfile(ctx, profile.UserID); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	content := fieldParams(profile.ProfileFields)
	content["user_id"] = profile.UserID

	if err := Execute(ctx, s.db, "CREATE profile CONTENT $content", map[string]any{"content": content}); err != nil {
		return WrapError(err, "create profile")
	}
	return nil
}
