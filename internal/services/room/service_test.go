package room_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/hallowdale/dungeoncrawl/internal/dice/mock"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/monsters"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/rooms"
	"github.com/hallowdale/dungeoncrawl/internal/services/monster"
	"github.com/hallowdale/dungeoncrawl/internal/services/room"
)

func setupService(t *testing.T) (room.Service, *mockdice.ManualMockRoller) {
	t.Helper()
	roller := mockdice.NewManualMockRoller()
	monsterSvc := monster.NewService(&monster.ServiceConfig{
		Repository: monsters.NewInMemoryRepository(),
		Roller:     roller,
	})
	svc := room.NewService(&room.ServiceConfig{
		Repository:     rooms.NewInMemoryRepository(),
		MonsterService: monsterSvc,
		Roller:         roller,
	})
	return svc, roller
}

func TestGenerateRoom(t *testing.T) {
	t.Run("scales rewards by difficulty", func(t *testing.T) {
		svc, roller := setupService(t)
		// template pick, monster chance (0.9 -> no monster)
		roller.SetUniforms([]float64{0.0, 0.9})

		generated, err := svc.GenerateRoom(&room.GenerateRoomInput{
			DungeonID:    "d1",
			DungeonLevel: 3,
			Difficulty:   entities.DifficultyHard,
		})
		require.NoError(t, err)

		assert.Equal(t, "Dark Chamber", generated.Name)
		assert.Equal(t, 3, generated.Level)
		// base 60 exp / 30 gold, Hard doubles both
		assert.Equal(t, 120, generated.ExperienceReward)
		assert.Equal(t, 60, generated.GoldReward)
		assert.Nil(t, generated.Monster)
		assert.False(t, generated.IsExplored)
	})

	t.Run("attaches a monster below the threshold", func(t *testing.T) {
		svc, roller := setupService(t)
		// template, monster chance, then monster generation draws
		roller.SetUniforms([]float64{0.0, 0.1, 0.5, 0.0, 0.0, 0.5, 0.5, 0.5})

		generated, err := svc.GenerateRoom(&room.GenerateRoomInput{
			DungeonID:    "d1",
			DungeonLevel: 2,
			Difficulty:   entities.DifficultyEasy,
		})
		require.NoError(t, err)

		require.NotNil(t, generated.Monster)
		assert.GreaterOrEqual(t, generated.Monster.Level, 1)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.GenerateRoom(nil)
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, err = svc.GenerateRoom(&room.GenerateRoomInput{DungeonLevel: 0, Difficulty: entities.DifficultyEasy})
		assert.True(t, dcerr.IsInvalidArgument(err))
	})
}

func TestMarkExplored(t *testing.T) {
	ctx := context.Background()
	svc, roller := setupService(t)
	roller.SetUniforms([]float64{0.0, 0.9})

	generated, err := svc.GenerateRoom(&room.GenerateRoomInput{
		DungeonID:    "d1",
		DungeonLevel: 1,
		Difficulty:   entities.DifficultyEasy,
	})
	require.NoError(t, err)
	require.NoError(t, svc.SaveRoom(ctx, generated))

	explored, err := svc.MarkExplored(ctx, generated.ID)
	require.NoError(t, err)
	assert.True(t, explored.IsExplored)

	// marking again never reverts
	again, err := svc.MarkExplored(ctx, generated.ID)
	require.NoError(t, err)
	assert.True(t, again.IsExplored)

	t.Run("unknown room reports not found", func(t *testing.T) {
		_, err := svc.MarkExplored(ctx, "missing")
		assert.True(t, dcerr.IsNotFound(err))
	})
}

func TestListByDungeon(t *testing.T) {
	ctx := context.Background()
	svc, roller := setupService(t)
	roller.SetUniforms([]float64{0.0, 0.9, 0.0, 0.9})

	for i := 0; i < 2; i++ {
		generated, err := svc.GenerateRoom(&room.GenerateRoomInput{
			DungeonID:    "d1",
			DungeonLevel: 1,
			Difficulty:   entities.DifficultyEasy,
		})
		require.NoError(t, err)
		require.NoError(t, svc.SaveRoom(ctx, generated))
	}

	listed, err := svc.ListByDungeon(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
