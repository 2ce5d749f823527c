package dungeon_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/hallowdale/dungeoncrawl/internal/dice/mock"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/artifacts"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/dungeons"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/monsters"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/rooms"
	"github.com/hallowdale/dungeoncrawl/internal/services/artifact"
	"github.com/hallowdale/dungeoncrawl/internal/services/dungeon"
	"github.com/hallowdale/dungeoncrawl/internal/services/monster"
	"github.com/hallowdale/dungeoncrawl/internal/services/room"
)

type fixture struct {
	svc     dungeon.Service
	roomSvc room.Service
	roller  *mockdice.ManualMockRoller
}

func setup(t *testing.T) *fixture {
	t.Helper()
	roller := mockdice.NewManualMockRoller()
	monsterSvc := monster.NewService(&monster.ServiceConfig{
		Repository: monsters.NewInMemoryRepository(),
		Roller:     roller,
	})
	roomSvc := room.NewService(&room.ServiceConfig{
		Repository:     rooms.NewInMemoryRepository(),
		MonsterService: monsterSvc,
		Roller:         roller,
	})
	artifactSvc := artifact.NewService(&artifact.ServiceConfig{
		Repository: artifacts.NewInMemoryRepository(),
		Roller:     roller,
	})
	svc := dungeon.NewService(&dungeon.ServiceConfig{
		Repository:      dungeons.NewInMemoryRepository(),
		RoomService:     roomSvc,
		ArtifactService: artifactSvc,
		Roller:          roller,
	})
	return &fixture{svc: svc, roomSvc: roomSvc, roller: roller}
}

// monsterless lets every room draw skip its monster so the uniform
// sequence stays two draws per room.
func monsterlessDraws(roomCount int) []float64 {
	draws := []float64{0.0} // dungeon template
	for i := 0; i < roomCount; i++ {
		draws = append(draws, 0.0, 0.9) // room template, no monster
	}
	return draws
}

func TestGenerateDungeon(t *testing.T) {
	ctx := context.Background()

	t.Run("bands difficulty by room position", func(t *testing.T) {
		f := setup(t)
		draws := monsterlessDraws(10)
		draws = append(draws, 0.9) // no artifact
		f.roller.SetUniforms(draws)

		generated, err := f.svc.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{
			RoomCount: 10,
			Level:     2,
		})
		require.NoError(t, err)
		require.Len(t, generated.Rooms, 10)

		want := []entities.Difficulty{
			entities.DifficultyEasy, entities.DifficultyEasy, entities.DifficultyEasy,
			entities.DifficultyMedium, entities.DifficultyMedium, entities.DifficultyMedium,
			entities.DifficultyHard, entities.DifficultyHard, entities.DifficultyHard,
			entities.DifficultyExtreme,
		}
		for i, r := range generated.Rooms {
			assert.Equal(t, want[i], r.Difficulty, "room %d", i)
			assert.Equal(t, generated.ID, r.DungeonID)
			assert.Equal(t, 2, r.Level)
		}

		assert.Equal(t, "The Abandoned Depths", generated.Name)
		assert.Nil(t, generated.Artifact)
		assert.False(t, generated.IsExplored)

		// rooms and the dungeon itself are persisted
		listed, err := f.roomSvc.ListByDungeon(ctx, generated.ID)
		require.NoError(t, err)
		assert.Len(t, listed, 10)

		stored, err := f.svc.GetDungeon(ctx, generated.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Rooms, 10)
	})

	t.Run("attaches an artifact below the threshold", func(t *testing.T) {
		f := setup(t)
		draws := monsterlessDraws(1)
		draws = append(draws, 0.1, 0.0, 0.0) // artifact chance, rarity, name
		f.roller.SetUniforms(draws)

		generated, err := f.svc.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{
			RoomCount: 1,
			Level:     1,
		})
		require.NoError(t, err)

		require.NotNil(t, generated.Artifact)
		assert.Equal(t, entities.RarityCommon, generated.Artifact.Rarity)
		assert.Equal(t, "Rusty Sword", generated.Artifact.Name)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.GenerateDungeon(ctx, nil)
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, err = f.svc.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{RoomCount: 0, Level: 1})
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, err = f.svc.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{RoomCount: 3, Level: 0})
		assert.True(t, dcerr.IsInvalidArgument(err))
	})
}

func TestProgressTracking(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	draws := monsterlessDraws(2)
	draws = append(draws, 0.9)
	f.roller.SetUniforms(draws)

	generated, err := f.svc.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{
		RoomCount: 2,
		Level:     1,
	})
	require.NoError(t, err)

	progress, err := f.svc.GetProgress(ctx, generated.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress)

	_, err = f.svc.MarkRoomExplored(ctx, generated.ID, generated.Rooms[0].ID)
	require.NoError(t, err)

	progress, err = f.svc.GetProgress(ctx, generated.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress)

	t.Run("unknown room reports not found", func(t *testing.T) {
		_, err := f.svc.MarkRoomExplored(ctx, generated.ID, "missing")
		assert.True(t, dcerr.IsNotFound(err))
	})

	// full exploration never flips the dungeon flag on its own
	_, err = f.svc.MarkRoomExplored(ctx, generated.ID, generated.Rooms[1].ID)
	require.NoError(t, err)

	stored, err := f.svc.GetDungeon(ctx, generated.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.Progress())
	assert.False(t, stored.IsExplored)

	marked, err := f.svc.MarkExplored(ctx, generated.ID)
	require.NoError(t, err)
	assert.True(t, marked.IsExplored)
}

func TestListByExplored(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	draws := monsterlessDraws(1)
	draws = append(draws, 0.9)
	draws = append(draws, monsterlessDraws(1)...)
	draws = append(draws, 0.9)
	f.roller.SetUniforms(draws)

	first, err := f.svc.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{RoomCount: 1, Level: 1})
	require.NoError(t, err)
	_, err = f.svc.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{RoomCount: 1, Level: 1})
	require.NoError(t, err)

	_, err = f.svc.MarkExplored(ctx, first.ID)
	require.NoError(t, err)

	explored, err := f.svc.ListByExplored(ctx, true)
	require.NoError(t, err)
	require.Len(t, explored, 1)
	assert.Equal(t, first.ID, explored[0].ID)

	unexplored, err := f.svc.ListByExplored(ctx, false)
	require.NoError(t, err)
	assert.Len(t, unexplored, 1)
}
