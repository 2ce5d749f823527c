package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/gamesessions"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/gamesessions/mocks"
	"github.com/hallowdale/dungeoncrawl/internal/services/session"
)

func setupService(t *testing.T) (session.Service, *mocks.MockTimeProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	timeProvider := mocks.NewMockTimeProvider(ctrl)
	timeProvider.EXPECT().Now().Return(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)).AnyTimes()

	svc := session.NewService(&session.ServiceConfig{
		Repository:   gamesessions.NewInMemoryRepository(timeProvider),
		TimeProvider: timeProvider,
	})
	return svc, timeProvider
}

func startSession(t *testing.T, svc session.Service, playerID string) *entities.GameSession {
	t.Helper()
	started, err := svc.StartSession(context.Background(), &session.StartSessionInput{
		PlayerID:    playerID,
		DungeonID:   "dungeon-1",
		FirstRoomID: "room-0",
		Snapshot: &entities.Snapshot{
			DungeonID:       "dungeon-1",
			TotalRooms:      5,
			MaxHealsPerRoom: entities.DefaultMaxHealsPerRoom,
			Difficulty:      entities.DifficultyMedium,
		},
	})
	require.NoError(t, err)
	return started
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("opens active and unpaused at the first room", func(t *testing.T) {
		svc, _ := setupService(t)

		started := startSession(t, svc, "player-1")

		assert.True(t, started.IsActive)
		assert.False(t, started.IsPaused)
		assert.Equal(t, "room-0", started.CurrentRoomID)
		assert.Equal(t, 0, started.CurrentRoomIndex)
		require.NotNil(t, started.Snapshot)
		assert.Equal(t, 5, started.Snapshot.TotalRooms)
	})

	t.Run("force ends the previous active session", func(t *testing.T) {
		svc, _ := setupService(t)

		first := startSession(t, svc, "player-1")
		second := startSession(t, svc, "player-1")

		stale, err := svc.GetSession(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, stale.IsActive)

		active, err := svc.GetActiveSession(ctx, "player-1")
		require.NoError(t, err)
		assert.Equal(t, second.ID, active.ID)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.StartSession(ctx, nil)
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, err = svc.StartSession(ctx, &session.StartSessionInput{DungeonID: "d"})
		assert.True(t, dcerr.IsInvalidArgument(err))
	})
}

func TestMoveToRoom(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	started := startSession(t, svc, "player-1")

	moved, err := svc.MoveToRoom(ctx, started.ID, "room-1", 1)
	require.NoError(t, err)
	assert.Equal(t, "room-1", moved.CurrentRoomID)
	assert.Equal(t, 1, moved.CurrentRoomIndex)

	t.Run("fails once the session has ended", func(t *testing.T) {
		_, err := svc.EndSession(ctx, started.ID)
		require.NoError(t, err)

		_, err = svc.MoveToRoom(ctx, started.ID, "room-2", 2)
		assert.True(t, dcerr.IsInvalidState(err))

		// the failed move leaves the session untouched
		stored, err := svc.GetSession(ctx, started.ID)
		require.NoError(t, err)
		assert.Equal(t, "room-1", stored.CurrentRoomID)
	})
}

func TestSaveAndResume(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	started := startSession(t, svc, "player-1")

	snapshot := &entities.Snapshot{
		DungeonID:        "dungeon-1",
		CurrentRoomIndex: 2,
		TotalRooms:       5,
		Score:            300,
		HealsUsedInRoom:  1,
		MaxHealsPerRoom:  entities.DefaultMaxHealsPerRoom,
		Difficulty:       entities.DifficultyMedium,
	}

	saved, err := svc.SaveSession(ctx, &session.SaveSessionInput{
		SessionID: started.ID,
		Snapshot:  snapshot,
		Paused:    true,
	})
	require.NoError(t, err)
	assert.True(t, saved.IsPaused)
	assert.False(t, saved.LastSaved.IsZero())

	resumed, err := svc.ResumeSession(ctx, started.ID)
	require.NoError(t, err)
	assert.False(t, resumed.IsPaused)
	assert.True(t, resumed.IsActive)
	require.NotNil(t, resumed.Snapshot)
	assert.Equal(t, 300, resumed.Snapshot.Score)
	assert.Equal(t, 2, resumed.Snapshot.CurrentRoomIndex)

	t.Run("saving while paused is still valid", func(t *testing.T) {
		snapshot.Score = 450
		again, err := svc.SaveSession(ctx, &session.SaveSessionInput{
			SessionID: started.ID,
			Snapshot:  snapshot,
			Paused:    true,
		})
		require.NoError(t, err)
		assert.Equal(t, 450, again.Snapshot.Score)
	})

	t.Run("an ended session cannot be resumed", func(t *testing.T) {
		_, err := svc.EndSession(ctx, started.ID)
		require.NoError(t, err)

		_, err = svc.ResumeSession(ctx, started.ID)
		assert.True(t, dcerr.IsInvalidState(err))
	})
}

func TestEndSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	started := startSession(t, svc, "player-1")

	_, err := svc.SaveSession(ctx, &session.SaveSessionInput{
		SessionID: started.ID,
		Snapshot:  started.Snapshot,
		Paused:    true,
	})
	require.NoError(t, err)

	ended, err := svc.EndSession(ctx, started.ID)
	require.NoError(t, err)
	assert.False(t, ended.IsActive)
	// ending keeps the paused flag as it was
	assert.True(t, ended.IsPaused)

	// idempotent
	again, err := svc.EndSession(ctx, started.ID)
	require.NoError(t, err)
	assert.False(t, again.IsActive)

	_, err = svc.GetActiveSession(ctx, "player-1")
	assert.True(t, dcerr.IsNotFound(err))
}
