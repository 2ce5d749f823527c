package entities_test

import (
	"testing"
	"time"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	"github.com/stretchr/testify/assert"
)

func TestGameSession_Lifecycle(t *testing.T) {
	now := time.Now()

	t.Run("new session starts active and unpaused", func(t *testing.T) {
		sess := entities.NewGameSession("s1", "p1", "d1", "r1", now)

		assert.True(t, sess.IsActive)
		assert.False(t, sess.IsPaused)
		assert.Equal(t, "r1", sess.CurrentRoomID)
	})

	t.Run("move fails once ended", func(t *testing.T) {
		sess := entities.NewGameSession("s1", "p1", "d1", "r1", now)
		sess.End()

		ok := sess.MoveToRoom("r2", 1)

		assert.False(t, ok)
		assert.Equal(t, "r1", sess.CurrentRoomID)
	})

	t.Run("end is idempotent and keeps the paused flag", func(t *testing.T) {
		sess := entities.NewGameSession("s1", "p1", "d1", "r1", now)
		sess.MarkSaved(now, true)

		sess.End()
		sess.End()

		assert.False(t, sess.IsActive)
		assert.True(t, sess.IsPaused)
	})

	t.Run("save records timestamp and paused flag", func(t *testing.T) {
		sess := entities.NewGameSession("s1", "p1", "d1", "r1", now)
		later := now.Add(5 * time.Minute)

		sess.MarkSaved(later, true)

		assert.True(t, sess.IsPaused)
		assert.Equal(t, later, sess.LastSaved)
	})
}

func TestSnapshot_EnterRoom(t *testing.T) {
	snap := &entities.Snapshot{
		CurrentRoomIndex:  0,
		TotalRooms:        5,
		IsMonsterDefeated: true,
		IsRoomCompleted:   true,
		HealsUsedInRoom:   2,
		MaxHealsPerRoom:   entities.DefaultMaxHealsPerRoom,
		Score:             300,
	}

	snap.EnterRoom(1)

	assert.Equal(t, 1, snap.CurrentRoomIndex)
	assert.False(t, snap.IsMonsterDefeated)
	assert.False(t, snap.IsRoomCompleted)
	assert.Equal(t, 0, snap.HealsUsedInRoom)
	assert.Equal(t, 300, snap.Score, "score persists across rooms")
	assert.True(t, snap.CanHeal())
}

func TestSnapshot_CanHeal(t *testing.T) {
	snap := &entities.Snapshot{MaxHealsPerRoom: 2}

	assert.True(t, snap.CanHeal())
	snap.HealsUsedInRoom = 2
	assert.False(t, snap.CanHeal())
}
