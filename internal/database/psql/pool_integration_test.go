package psql

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/nfrund/homejobs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, EnsureSchema(ctx, pool))

	repo := NewProfileRepository(pool)
	userID := uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM profiles WHERE id = $1", userID)
	})

	require.NoError(t, repo.CreateProfile(ctx, &domain.Profile{UserID: userID, ProfileFields: domain.ProfileFields{Username: "ada@x.com"}}))

	fields := domain.ProfileFields{FullName: "Ada L", Username: "ada@x.com", CompanyName: "Analytical"}
	require.NoError(t, repo.UpdateProfile(ctx, userID, fields))
	require.NoError(t, repo.CreateProfile(ctx, &domain.Profile{UserID: userID}))

	got, err := repo.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, fields, got.ProfileFields)

	assert.ErrorIs(t, repo.UpdateProfile(ctx, uuid.NewString(), fields), domain.ErrNotFound)
}
