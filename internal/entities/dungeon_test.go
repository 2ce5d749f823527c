package entities_test

import (
	"testing"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	"github.com/stretchr/testify/assert"
)

func TestDungeon_Progress(t *testing.T) {
	t.Run("floors the percentage", func(t *testing.T) {
		dungeon := &entities.Dungeon{
			Rooms: []*entities.Room{
				{ID: "r1", IsExplored: true},
				{ID: "r2", IsExplored: true},
				{ID: "r3"},
			},
		}

		// 2/3 = 66.67, floored
		assert.Equal(t, 66, dungeon.Progress())
	})

	t.Run("zero rooms is zero progress", func(t *testing.T) {
		dungeon := &entities.Dungeon{}
		assert.Equal(t, 0, dungeon.Progress())
	})

	t.Run("all explored is 100", func(t *testing.T) {
		dungeon := &entities.Dungeon{
			Rooms: []*entities.Room{
				{ID: "r1", IsExplored: true},
				{ID: "r2", IsExplored: true},
			},
		}
		assert.Equal(t, 100, dungeon.Progress())
	})
}

func TestDungeon_RoomAt(t *testing.T) {
	dungeon := &entities.Dungeon{
		Rooms: []*entities.Room{{ID: "r1"}, {ID: "r2"}},
	}

	room, ok := dungeon.RoomAt(1)
	assert.True(t, ok)
	assert.Equal(t, "r2", room.ID)

	_, ok = dungeon.RoomAt(2)
	assert.False(t, ok)

	_, ok = dungeon.RoomAt(-1)
	assert.False(t, ok)
}

func TestRoom_MarkExploredIsMonotonic(t *testing.T) {
	room := &entities.Room{ID: "r1"}

	room.MarkExplored()
	assert.True(t, room.IsExplored)

	// marking again never reverts
	room.MarkExplored()
	assert.True(t, room.IsExplored)
}
