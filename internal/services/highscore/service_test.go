package highscore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/highscores"
	"github.com/hallowdale/dungeoncrawl/internal/services/highscore"
)

func setupService(t *testing.T) highscore.Service {
	t.Helper()
	return highscore.NewService(&highscore.ServiceConfig{
		Repository: highscores.NewInMemoryRepository(),
	})
}

func TestUpdateIfHigher(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	best, changed, err := svc.UpdateIfHigher(ctx, "player-1", 500)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 500, best.Score)

	t.Run("lower score leaves the board alone", func(t *testing.T) {
		best, changed, err := svc.UpdateIfHigher(ctx, "player-1", 300)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 500, best.Score)
	})

	t.Run("equal score leaves the board alone", func(t *testing.T) {
		_, changed, err := svc.UpdateIfHigher(ctx, "player-1", 500)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("higher score replaces the best", func(t *testing.T) {
		best, changed, err := svc.UpdateIfHigher(ctx, "player-1", 800)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 800, best.Score)

		stored, err := svc.GetHighScore(ctx, "player-1")
		require.NoError(t, err)
		assert.Equal(t, 800, stored.Score)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, _, err := svc.UpdateIfHigher(ctx, "", 100)
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, _, err = svc.UpdateIfHigher(ctx, "player-1", -1)
		assert.True(t, dcerr.IsInvalidArgument(err))
	})
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	scores := map[string]int{
		"alice": 900,
		"bob":   1200,
		"carol": 600,
	}
	for playerID, score := range scores {
		_, _, err := svc.UpdateIfHigher(ctx, playerID, score)
		require.NoError(t, err)
	}

	top, err := svc.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].PlayerID)
	assert.Equal(t, "alice", top[1].PlayerID)

	rank, err := svc.Rank(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	t.Run("unknown player has no rank", func(t *testing.T) {
		_, err := svc.Rank(ctx, "mallory")
		assert.True(t, dcerr.IsNotFound(err))
	})
}
