package repository

import (
	"context"
	"errors"
	"testing"

	"devmesh/internal/cache"
	"devmesh/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create and GetByEmail", func(t *testing.T) {
		user := &models.User{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Password:  "hash",
			Skills:    []string{"go", "math"},
		}
		require.NoError(t, repo.Create(ctx, user))

		got, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, []string{"go", "math"}, got.Skills)

		missing, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Create duplicate email surfaces conflict", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{
			FirstName: "Other",
			LastName:  "Person",
			Email:     "ada@example.com",
			Password:  "hash",
		})
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("GetByID missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("Update persists changes", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)

		user.About = "first programmer"
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, "first programmer", got.About)
	})

	t.Run("Update never touches email or password", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)

		user.Email = "evil@example.com"
		user.Password = ""
		user.About = "still the first programmer"
		require.NoError(t, repo.Update(ctx, user))

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "ada@example.com", stored.Email)
		assert.Equal(t, "hash", stored.Password)
		assert.Equal(t, "still the first programmer", stored.About)
	})

	t.Run("ListCandidates applies exclusions and filters", func(t *testing.T) {
		others := []*models.User{
			{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "hash", Age: 40, Gender: models.GenderFemale},
			{FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Password: "hash", Age: 30, Gender: models.GenderMale},
			{FirstName: "Linus", LastName: "Torvalds", Email: "linus@example.com", Password: "hash", Age: 50, Gender: models.GenderMale},
		}
		for _, u := range others {
			require.NoError(t, repo.Create(ctx, u))
		}

		candidates, err := repo.ListCandidates(ctx, []uint{others[0].ID}, models.FeedFilters{})
		require.NoError(t, err)
		for _, c := range candidates {
			assert.NotEqual(t, others[0].ID, c.ID)
		}

		males, err := repo.ListCandidates(ctx, nil, models.FeedFilters{Gender: models.GenderMale, MinAge: 40})
		require.NoError(t, err)
		require.Len(t, males, 1)
		assert.Equal(t, "Linus", males[0].FirstName)
	})
}

// A cache-hit read comes back with the password hash redacted (the hash never
// enters Redis). Writing that record back must not clobber the stored hash.
func TestUpdateAfterCachedReadKeepsPasswordHash(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	user := &models.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "$2a$10$bcrypt-hash",
	}
	require.NoError(t, repo.Create(ctx, user))

	// First read warms the cache, second is served from it without the hash.
	_, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	cached, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cached.Password)

	cached.About = "invented the compiler"
	require.NoError(t, repo.Update(ctx, cached))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "$2a$10$bcrypt-hash", stored.Password)
	assert.Equal(t, "invented the compiler", stored.About)

	// The write invalidated the cache, so the next read sees the edit.
	fresh, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "invented the compiler", fresh.About)
}
