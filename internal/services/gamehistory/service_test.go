package gamehistory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/histories"
	"github.com/hallowdale/dungeoncrawl/internal/services/gamehistory"
)

func setupService(t *testing.T) gamehistory.Service {
	t.Helper()
	return gamehistory.NewService(&gamehistory.ServiceConfig{
		Repository: histories.NewInMemoryRepository(),
	})
}

func TestRecordCompletion(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	history, added, err := svc.RecordCompletion(ctx, "player-1", "dungeon-1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"dungeon-1"}, history.CompletedDungeonIDs)
	assert.False(t, history.DatePlayed.IsZero())

	t.Run("duplicates are skipped", func(t *testing.T) {
		history, added, err := svc.RecordCompletion(ctx, "player-1", "dungeon-1")
		require.NoError(t, err)
		assert.False(t, added)
		assert.Len(t, history.CompletedDungeonIDs, 1)
	})

	t.Run("distinct dungeons accumulate", func(t *testing.T) {
		_, added, err := svc.RecordCompletion(ctx, "player-1", "dungeon-2")
		require.NoError(t, err)
		assert.True(t, added)

		total, err := svc.TotalCompleted(ctx, "player-1")
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, _, err := svc.RecordCompletion(ctx, "", "dungeon-1")
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, _, err = svc.RecordCompletion(ctx, "player-1", "")
		assert.True(t, dcerr.IsInvalidArgument(err))
	})
}

func TestGetHistory(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	t.Run("new players get an empty history", func(t *testing.T) {
		history, err := svc.GetHistory(ctx, "fresh")
		require.NoError(t, err)
		assert.Equal(t, "fresh", history.PlayerID)
		assert.Empty(t, history.CompletedDungeonIDs)

		total, err := svc.TotalCompleted(ctx, "fresh")
		require.NoError(t, err)
		assert.Equal(t, 0, total)
	})
}
