package repository

import (
	"context"
	"testing"
	"time"

	"github.com/epeers/portfolio-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHoldings() *models.UserHoldings {
	h := models.NewUserHoldings()
	h.ETF.Set("IWDA.AS", decimal.RequireFromString("5000"))
	h.ETF.Set("CW8.PA", decimal.RequireFromString("3000.75"))
	h.SCPI.Set("Corum Origin", decimal.RequireFromString("4000"))
	h.SCPI.Set("Primovie", decimal.RequireFromString("-12.5"))
	return h
}

// testHoldingsStore exercises the behaviour every HoldingsStore must share
func testHoldingsStore(t *testing.T, store HoldingsStore) {
	ctx := context.Background()
	userID := "test-" + uuid.NewString()

	t.Run("unknown user loads empty", func(t *testing.T) {
		h, err := store.LoadHoldings(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 0, h.ETF.Len())
		assert.Equal(t, 0, h.SCPI.Len())
	})

	t.Run("round trip", func(t *testing.T) {
		saved := sampleHoldings()
		require.NoError(t, store.ReplaceHoldings(ctx, userID, saved))

		loaded, err := store.LoadHoldings(ctx, userID)
		require.NoError(t, err)
		assert.True(t, saved.ETF.Equal(loaded.ETF), "etf mismatch: %v", loaded.ETF.Entries())
		assert.True(t, saved.SCPI.Equal(loaded.SCPI), "scpi mismatch: %v", loaded.SCPI.Entries())
		assert.Equal(t, []string{"IWDA.AS", "CW8.PA"}, loaded.ETF.Names())
	})

	t.Run("replace is wholesale", func(t *testing.T) {
		next := models.NewUserHoldings()
		next.ETF.Set("EWLD.PA", decimal.NewFromInt(100))
		require.NoError(t, store.ReplaceHoldings(ctx, userID, next))

		loaded, err := store.LoadHoldings(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"EWLD.PA"}, loaded.ETF.Names())
		assert.Equal(t, 0, loaded.SCPI.Len())
	})

	t.Run("users are isolated", func(t *testing.T) {
		other := "test-" + uuid.NewString()
		require.NoError(t, store.ReplaceHoldings(ctx, other, sampleHoldings()))

		loaded, err := store.LoadHoldings(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"EWLD.PA"}, loaded.ETF.Names())
	})
}

// testUserStore exercises account persistence
func testUserStore(t *testing.T, store UserStore) {
	ctx := context.Background()
	username := "user-" + uuid.NewString()[:8]
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	require.NoError(t, store.CreateUser(ctx, u))

	got, err := store.GetUserByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

	dup := *u
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, store.CreateUser(ctx, &dup), ErrUserConflict)

	_, err = store.GetUserByUsername(ctx, "nobody-"+uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
