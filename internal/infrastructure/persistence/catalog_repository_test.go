package persistence

import (
	"context"
	"testing"

	"github.com/JostinQuilca/FoodApp/internal/domain/identity"
	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ====== User Repository Tests ======

func TestGormUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "0102030405", identity.RoleSeller)
	seedUser(t, db, "0911111111", identity.RoleClient)

	t.Run("find by id", func(t *testing.T) {
		user, err := repo.FindByID(ctx, "0102030405")
		require.NoError(t, err)
		assert.Equal(t, identity.RoleSeller, user.Role)
		assert.Equal(t, identity.UserStateActive, user.State)
		assert.Equal(t, "User 0102030405", user.Name)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "nobody")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("find by ids skips unknown ids", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, []string{"0102030405", "0911111111", "nobody"})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("empty id list needs no query", func(t *testing.T) {
		users, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("save updates an existing user", func(t *testing.T) {
		user, err := repo.FindByID(ctx, "0911111111")
		require.NoError(t, err)
		user.Name = "Renamed"
		require.NoError(t, repo.Save(ctx, user))

		reloaded, err := repo.FindByID(ctx, "0911111111")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", reloaded.Name)
	})
}

// ====== Item Repository Tests ======

func TestGormItemRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	ceviche := seedItem(t, db, "Ceviche", "10.00")
	limonada := seedItem(t, db, "Limonada", "5.50")

	t.Run("ids are assigned", func(t *testing.T) {
		assert.NotZero(t, ceviche.ID)
		assert.NotEqual(t, ceviche.ID, limonada.ID)
	})

	t.Run("find by ids returns prices exactly", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, []int64{limonada.ID, ceviche.ID, 999})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, ceviche.ID, items[0].ID)
		assert.True(t, items[0].Price.Equal(decimal.RequireFromString("10")))
		assert.True(t, items[1].Price.Equal(decimal.RequireFromString("5.5")))
	})

	t.Run("empty id list", func(t *testing.T) {
		items, err := repo.FindByIDs(ctx, []int64{})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
