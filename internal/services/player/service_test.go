package player_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/players"
	"github.com/hallowdale/dungeoncrawl/internal/services/player"
)

func setupService(t *testing.T) player.Service {
	t.Helper()
	return player.NewService(&player.ServiceConfig{
		Repository: players.NewInMemoryRepository(),
	})
}

func TestCreatePlayer(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	created, err := svc.CreatePlayer(ctx, &player.CreatePlayerInput{
		Username: "hero",
		Email:    "hero@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Level)
	assert.Equal(t, 100, created.Health)
	assert.Equal(t, 10, created.Attack)
	assert.Equal(t, 5, created.Defense)

	t.Run("rejects blank username", func(t *testing.T) {
		_, err := svc.CreatePlayer(ctx, &player.CreatePlayerInput{Username: "  "})
		assert.True(t, dcerr.IsInvalidArgument(err))
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := svc.CreatePlayer(ctx, &player.CreatePlayerInput{Username: "hero"})
		assert.Error(t, err)
	})
}

func TestAddExperience(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	created, err := svc.CreatePlayer(ctx, &player.CreatePlayerInput{Username: "hero"})
	require.NoError(t, err)

	leveled, err := svc.AddExperience(ctx, created.ID, 150)
	require.NoError(t, err)

	assert.Equal(t, 2, leveled.Level)
	assert.Equal(t, 50, leveled.ExperiencePoints)

	// change survived the round trip
	fetched, err := svc.GetPlayer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fetched.Level)

	t.Run("rejects negative points", func(t *testing.T) {
		_, err := svc.AddExperience(ctx, created.ID, -5)
		assert.True(t, dcerr.IsInvalidArgument(err))
	})

	t.Run("unknown player reports not found", func(t *testing.T) {
		_, err := svc.AddExperience(ctx, "missing", 10)
		assert.True(t, dcerr.IsNotFound(err))
	})
}

func TestGold(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	created, err := svc.CreatePlayer(ctx, &player.CreatePlayerInput{Username: "hero"})
	require.NoError(t, err)

	_, err = svc.AddGold(ctx, created.ID, 50)
	require.NoError(t, err)

	t.Run("overspend fails without mutation", func(t *testing.T) {
		_, err := svc.SpendGold(ctx, created.ID, 100)
		assert.True(t, dcerr.IsInsufficientResource(err))

		fetched, err := svc.GetPlayer(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 50, fetched.Gold)
	})

	t.Run("spend within balance", func(t *testing.T) {
		updated, err := svc.SpendGold(ctx, created.ID, 30)
		require.NoError(t, err)
		assert.Equal(t, 20, updated.Gold)
	})
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	created, err := svc.CreatePlayer(ctx, &player.CreatePlayerInput{Username: "hero"})
	require.NoError(t, err)

	_, err = svc.AddExperience(ctx, created.ID, 150)
	require.NoError(t, err)

	stats, err := svc.GetStats(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "hero", stats.Username)
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 110, stats.MaxHealth)
	assert.Equal(t, 0, stats.ArtifactCount)
	assert.InDelta(t, 25.0, stats.ExperiencePercentage, 0.001)
	assert.InDelta(t, 100.0, stats.HealthPercentage, 0.001)
	assert.Equal(t, 0, stats.DungeonsCompleted)
}
