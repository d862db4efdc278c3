package tokenstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventdesk/eventdesk/internal/errors"
	"github.com/eventdesk/eventdesk/sessions"
	"github.com/eventdesk/eventdesk/tokenstore"
)

const testPrincipal = "admin"

func newTestStore(t *testing.T) *tokenstore.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // in-memory sqlite: one conn is one database

	store, err := tokenstore.New(db)
	require.NoError(t, err)
	return store
}

func testSession() *sessions.Payload {
	return &sessions.Payload{Principal: testPrincipal}
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an authenticated session", func(t *testing.T) {
		store := newTestStore(t)

		err := store.Save(ctx, nil, tokenstore.Tokens{AccessToken: "a1", RefreshToken: "r1"})
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrNotAuthenticated))

		err = store.Save(ctx, &sessions.Payload{}, tokenstore.Tokens{AccessToken: "a1", RefreshToken: "r1"})
		require.True(t, errors.Is(err, errors.ErrNotAuthenticated))
	})

	t.Run("creates the record with attribution", func(t *testing.T) {
		store := newTestStore(t)

		err := store.Save(ctx, testSession(), tokenstore.Tokens{
			AccessToken:  "a1",
			RefreshToken: "r1",
			ExpiryDate:   int64Ptr(1767225600000),
		})
		require.NoError(t, err)

		record, err := store.Get(ctx, testSession())
		require.NoError(t, err)
		require.NotNil(t, record)
		require.Equal(t, tokenstore.RecordID, record.ID)
		require.Equal(t, testPrincipal, record.UserID)
		require.Equal(t, "a1", record.AccessToken)
		require.Equal(t, "r1", record.RefreshToken)
		require.NotNil(t, record.ExpiryDate)
		require.Equal(t, int64(1767225600000), *record.ExpiryDate)
		require.False(t, record.CreatedAt.IsZero())
	})

	t.Run("update without refresh token keeps the stored one", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Save(ctx, testSession(), tokenstore.Tokens{
			AccessToken:  "a1",
			RefreshToken: "r1",
			ExpiryDate:   int64Ptr(1000),
		}))
		require.NoError(t, store.Save(ctx, testSession(), tokenstore.Tokens{
			AccessToken: "a2",
			ExpiryDate:  int64Ptr(2000),
		}))

		record, err := store.Get(ctx, testSession())
		require.NoError(t, err)
		require.Equal(t, "a2", record.AccessToken)
		require.Equal(t, "r1", record.RefreshToken)
		require.Equal(t, int64(2000), *record.ExpiryDate)
	})

	t.Run("update with a new refresh token replaces it", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Save(ctx, testSession(), tokenstore.Tokens{
			AccessToken:  "a1",
			RefreshToken: "r1",
		}))
		require.NoError(t, store.Save(ctx, testSession(), tokenstore.Tokens{
			AccessToken:  "a2",
			RefreshToken: "r2",
		}))

		record, err := store.Get(ctx, testSession())
		require.NoError(t, err)
		require.Equal(t, "r2", record.RefreshToken)
	})

	t.Run("update clears expiry when the provider omits it", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Save(ctx, testSession(), tokenstore.Tokens{
			AccessToken:  "a1",
			RefreshToken: "r1",
			ExpiryDate:   int64Ptr(1000),
		}))
		require.NoError(t, store.Save(ctx, testSession(), tokenstore.Tokens{
			AccessToken: "a2",
		}))

		record, err := store.Get(ctx, testSession())
		require.NoError(t, err)
		require.Nil(t, record.ExpiryDate)
	})
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("no session yields nil without error", func(t *testing.T) {
		store := newTestStore(t)

		record, err := store.Get(ctx, nil)
		require.NoError(t, err)
		require.Nil(t, record)
	})

	t.Run("no record yields nil without error", func(t *testing.T) {
		store := newTestStore(t)

		record, err := store.Get(ctx, testSession())
		require.NoError(t, err)
		require.Nil(t, record)
	})
}
