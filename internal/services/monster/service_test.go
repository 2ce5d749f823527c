package monster_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/hallowdale/dungeoncrawl/internal/dice/mock"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/monsters"
	"github.com/hallowdale/dungeoncrawl/internal/services/monster"
)

func setupService(t *testing.T) (monster.Service, *mockdice.ManualMockRoller) {
	t.Helper()
	roller := mockdice.NewManualMockRoller()
	svc := monster.NewService(&monster.ServiceConfig{
		Repository: monsters.NewInMemoryRepository(),
		Roller:     roller,
	})
	return svc, roller
}

func TestGenerateMonster(t *testing.T) {
	t.Run("deterministic draw produces scaled stats", func(t *testing.T) {
		svc, roller := setupService(t)
		// level variation midpoint, type, name, three stat jitters
		roller.SetUniforms([]float64{0.99, 0.0, 0.0, 0.5, 0.5, 0.5})

		goblin := entities.MonsterTypeGoblin
		generated, err := svc.GenerateMonster(&monster.GenerateMonsterInput{
			Level:      3,
			Difficulty: entities.DifficultyHard,
			Type:       &goblin,
		})
		require.NoError(t, err)

		// Hard band is [0,2]; uniform 0.99 lands on +2
		assert.Equal(t, 5, generated.Level)
		assert.Equal(t, entities.MonsterTypeGoblin, generated.Type)
		assert.Equal(t, "Gribble", generated.Name)
		assert.NotEmpty(t, generated.ID)

		// level 5 bases: health 125, attack 15, defense 8; jitter stays within 10%
		assert.InDelta(t, 125, generated.Health, 13)
		assert.InDelta(t, 15, generated.Attack, 2)
		assert.InDelta(t, 8, generated.Defense, 1)
	})

	t.Run("level never drops below one", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetUniforms([]float64{0.0, 0.0, 0.0, 0.5, 0.5, 0.5})

		generated, err := svc.GenerateMonster(&monster.GenerateMonsterInput{
			Level:      1,
			Difficulty: entities.DifficultyEasy, // band [-2,0]
		})
		require.NoError(t, err)
		assert.Equal(t, 1, generated.Level)
	})

	t.Run("extreme band overshoots the target", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetUniforms([]float64{0.99, 0.0, 0.0, 0.5, 0.5, 0.5})

		generated, err := svc.GenerateMonster(&monster.GenerateMonsterInput{
			Level:      3,
			Difficulty: entities.DifficultyExtreme, // band [1,4]
		})
		require.NoError(t, err)
		assert.Equal(t, 7, generated.Level)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.GenerateMonster(nil)
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, err = svc.GenerateMonster(&monster.GenerateMonsterInput{Level: 0, Difficulty: entities.DifficultyEasy})
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, err = svc.GenerateMonster(&monster.GenerateMonsterInput{Level: 1, Difficulty: "nightmare"})
		assert.True(t, dcerr.IsInvalidArgument(err))
	})
}

func TestMonsterCRUD(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	created, err := svc.CreateMonster(ctx, &monster.CreateMonsterInput{
		Name:    "Gribble",
		Level:   2,
		Health:  80,
		Attack:  9,
		Defense: 5,
		Type:    entities.MonsterTypeGoblin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := svc.GetMonster(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gribble", fetched.Name)

	fetched.Health = 40
	require.NoError(t, svc.UpdateMonster(ctx, fetched))

	inRange, err := svc.ListByLevelRange(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	outOfRange, err := svc.ListByLevelRange(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, outOfRange)

	require.NoError(t, svc.DeleteMonster(ctx, created.ID))
	_, err = svc.GetMonster(ctx, created.ID)
	assert.True(t, dcerr.IsNotFound(err))
}
