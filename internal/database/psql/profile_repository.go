package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nfrund/homejobs/internal/domain"
)

// DBTX is the subset of *pgxpool.Pool used by the repository.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProfileRepository implements domain.ProfileRepository using PostgreSQL.
// Rows live in a "profiles" table keyed by the user identifier.
type ProfileRepository struct {
	db DBTX
}

// NewProfileRepository creates a new PostgreSQL profile repository.
func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile retrieves the profile of a user.
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT id, full_name, username, website, billing_address, phone_number, company_name
		FROM profiles WHERE id = $1`

	var p domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Username,
		&p.Website,
		&p.BillingAddress,
		&p.PhoneNumber,
		&p.CompanyName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile writes every editable field in a single statement.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID string, f domain.ProfileFields) error {
	query := `UPDATE profiles SET
		full_name = $1, username = $2, website = $3,
		billing_address = $4, phone_number = $5, company_name = $6,
		updated_at = now()
	WHERE id = $7`

	tag, err := r.db.Exec(ctx, query,
		f.FullName, f.Username, f.Website,
		f.BillingAddress, f.PhoneNumber, f.CompanyName,
		userID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateProfile inserts the profile row for an account, keeping an existing one.
func (r *ProfileRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (id, full_name, username, website, billing_address, phone_number, company_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.Exec(ctx, query,
		p.UserID, p.FullName, p.Username, p.Website,
		p.BillingAddress, p.PhoneNumber, p.CompanyName,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}
