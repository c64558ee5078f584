package coins

import (
	"context"
	"testing"

	"cryptopulse-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCoinsTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.TrackedCoin{}))
	return &Service{DB: db}
}

func TestSeed_PopulatesEmptyRegistry(t *testing.T) {
	svc := setupCoinsTest(t)

	require.NoError(t, svc.Seed(context.Background()))
	ids, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultCoins, ids)

	// Re-seeding is a no-op.
	require.NoError(t, svc.Seed(context.Background()))
	ids, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, len(DefaultCoins))
}

func TestSeed_SkipsNonEmptyRegistry(t *testing.T) {
	svc := setupCoinsTest(t)

	require.NoError(t, svc.Add(context.Background(), "bitcoin"))
	require.NoError(t, svc.Seed(context.Background()))

	ids, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin"}, ids)
}

func TestAdd_AppendsInOrder(t *testing.T) {
	svc := setupCoinsTest(t)

	require.NoError(t, svc.Add(context.Background(), "bitcoin"))
	require.NoError(t, svc.Add(context.Background(), "ethereum"))
	require.NoError(t, svc.Add(context.Background(), "solana"))

	ids, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin", "ethereum", "solana"}, ids)
}

func TestAdd_RejectsDuplicate(t *testing.T) {
	svc := setupCoinsTest(t)

	require.NoError(t, svc.Add(context.Background(), "bitcoin"))
	err := svc.Add(context.Background(), "bitcoin")
	assert.ErrorIs(t, err, ErrInvalidCoinID)
}

func TestRemove(t *testing.T) {
	svc := setupCoinsTest(t)

	require.NoError(t, svc.Add(context.Background(), "bitcoin"))
	require.NoError(t, svc.Add(context.Background(), "ethereum"))
	require.NoError(t, svc.Remove(context.Background(), "bitcoin"))

	ids, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ethereum"}, ids)
	assert.False(t, svc.IsTracked(context.Background(), "bitcoin"))
}

func TestRemove_NotTracked(t *testing.T) {
	svc := setupCoinsTest(t)

	err := svc.Remove(context.Background(), "notacoin")
	assert.ErrorIs(t, err, ErrNotTracked)
}

func TestIsTracked(t *testing.T) {
	svc := setupCoinsTest(t)

	require.NoError(t, svc.Add(context.Background(), "bitcoin"))
	assert.True(t, svc.IsTracked(context.Background(), "bitcoin"))
	assert.False(t, svc.IsTracked(context.Background(), "ethereum"))
}

func TestRemoveThenAdd_KeepsAppendOrder(t *testing.T) {
	svc := setupCoinsTest(t)

	require.NoError(t, svc.Add(context.Background(), "bitcoin"))
	require.NoError(t, svc.Add(context.Background(), "ethereum"))
	require.NoError(t, svc.Remove(context.Background(), "bitcoin"))
	require.NoError(t, svc.Add(context.Background(), "bitcoin"))

	ids, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ethereum", "bitcoin"}, ids)
}
