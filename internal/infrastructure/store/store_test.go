package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/joystick-informer/backend/config"
	"github.com/joystick-informer/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB opens a throwaway database file. A plain :memory: DSN
// gives every pooled connection its own empty database, so migrations
// would not be visible across the pool.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(config.DatabaseConfig{DSN: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	return db
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch round-trip", func(t *testing.T) {
		repo := NewUserRepository(openTestDB(t))

		user := &domain.User{
			ID:           "3f0e8a0c-0000-4000-8000-000000000001",
			Username:     "player1",
			Email:        "player1@example.com",
			PasswordHash: "$2a$10$fakehashfakehashfakehash",
		}
		require.NoError(t, repo.Create(ctx, user))
		assert.False(t, user.CreatedAt.IsZero())

		got, err := repo.GetByUsername(ctx, "player1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
	})

	t.Run("unknown username maps to user not found", func(t *testing.T) {
		repo := NewUserRepository(openTestDB(t))

		_, err := repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("duplicate username is rejected by the unique index", func(t *testing.T) {
		repo := NewUserRepository(openTestDB(t))

		first := &domain.User{ID: "id-1", Username: "player1", Email: "a@example.com", PasswordHash: "h1"}
		require.NoError(t, repo.Create(ctx, first))

		second := &domain.User{ID: "id-2", Username: "player1", Email: "b@example.com", PasswordHash: "h2"}
		assert.Error(t, repo.Create(ctx, second))
	})
}

func TestWatchlistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row reads as an empty watchlist", func(t *testing.T) {
		repo := NewWatchlistRepository(openTestDB(t))

		list, err := repo.Get(ctx, "fresh-user")
		require.NoError(t, err)
		assert.Equal(t, "fresh-user", list.UserID)
		assert.Equal(t, []int{}, list.GameIDs)
		assert.Equal(t, []int{}, list.RelatedIDs)
	})

	t.Run("save and fetch round-trip", func(t *testing.T) {
		repo := NewWatchlistRepository(openTestDB(t))

		list := &domain.Watchlist{
			UserID:     "user-1",
			GameIDs:    []int{45149, 7346},
			RelatedIDs: []int{101, 102, 103, 104, 105},
		}
		require.NoError(t, repo.Save(ctx, list))

		got, err := repo.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, list.GameIDs, got.GameIDs)
		assert.Equal(t, list.RelatedIDs, got.RelatedIDs)
	})

	t.Run("second save replaces the stored lists", func(t *testing.T) {
		repo := NewWatchlistRepository(openTestDB(t))

		require.NoError(t, repo.Save(ctx, &domain.Watchlist{
			UserID: "user-1", GameIDs: []int{45149}, RelatedIDs: []int{101, 102},
		}))
		require.NoError(t, repo.Save(ctx, &domain.Watchlist{
			UserID: "user-1", GameIDs: []int{}, RelatedIDs: []int{},
		}))

		got, err := repo.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, got.GameIDs)
		assert.Empty(t, got.RelatedIDs)
	})

	t.Run("nil slices are stored as empty lists", func(t *testing.T) {
		repo := NewWatchlistRepository(openTestDB(t))

		require.NoError(t, repo.Save(ctx, &domain.Watchlist{UserID: "user-1"}))

		got, err := repo.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []int{}, got.GameIDs)
		assert.Equal(t, []int{}, got.RelatedIDs)
	})
}
