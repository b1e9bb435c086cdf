package database

import (
	"context"
	"testing"
	"time"

	"github.com/nfrund/homejobs/internal/domain"
	"github.com/nfrund/homejobs/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
)

// setupTestDB connects to the SurrealDB instance described by .env.test or the
// environment.
func setupTestDB(t *testing.T) *surrealdb.DB {
	t.Helper()
	cfg := testutils.ConfigForTests(t)

	ctx := context.Background()
	db, err := NewDB(ctx, cfg)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, EnsureSchema(ctx, db))

	t.Cleanup(func() {
		_ = Execute(context.Background(), db, "DELETE session; DELETE profile; DELETE user;", nil)
		db.Close(context.Background())
	})
	return db
}

func TestSessionAndProfileStores(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	sessions := NewSessionStore(db, 5*time.Second, time.Hour)
	profiles := NewProfileStore(db, 5*time.Second)

	sess, err := sessions.SignUp(ctx, "ada@x.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	_, err = sessions.SignUp(ctx, "ada@x.com", "password123")
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = sessions.SignIn(ctx, "ada@x.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	resolved, err := sessions.Authenticate(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, resolved.UserID)

	require.NoError(t, profiles.CreateProfile(ctx, &domain.Profile{
		UserID:        sess.UserID,
		ProfileFields: domain.ProfileFields{FullName: "Ada", Username: "ada@x.com"},
	}))

	fields := domain.ProfileFields{FullName: "Ada L", Username: "ada@x.com", CompanyName: "Analytical Engines"}
	require.NoError(t, profiles.UpdateProfile(ctx, sess.UserID, fields))

	// Creating again keeps the saved row.
	require.NoError(t, profiles.CreateProfile(ctx, &domain.Profile{UserID: sess.UserID}))

	got, err := profiles.GetProfile(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, fields, got.ProfileFields)

	assert.ErrorIs(t, profiles.UpdateProfile(ctx, "missing-user", fields), domain.ErrNotFound)

	require.NoError(t, sessions.SignOut(ctx, sess))
	_, err = sessions.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
