package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/hallowdale/dungeoncrawl/internal/dice/mock"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/services/combat"
)

func setupService(t *testing.T) (combat.Service, *mockdice.ManualMockRoller) {
	t.Helper()
	roller := mockdice.NewManualMockRoller()
	svc := combat.NewService(&combat.ServiceConfig{Roller: roller})
	return svc, roller
}

func testPlayer() *entities.Player {
	player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")
	player.Attack = 10
	player.Defense = 2
	player.Health = 50
	player.MaxHealth = 50
	return player
}

func testMonster() *entities.Monster {
	return &entities.Monster{
		ID:      "m1",
		Name:    "Cave Goblin",
		Type:    entities.MonsterTypeGoblin,
		Level:   1,
		Health:  40,
		Attack:  7,
		Defense: 1,
	}
}

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		name    string
		roll    int
		attack  int
		defense int
		want    int
	}{
		{name: "critical doubles base", roll: 20, attack: 10, defense: 2, want: 18},
		{name: "fumble deals nothing", roll: 1, attack: 10, defense: 2, want: 0},
		{name: "high roll adds half", roll: 15, attack: 10, defense: 2, want: 13},
		{name: "low roll halves", roll: 5, attack: 10, defense: 2, want: 4},
		{name: "mid roll deals base", roll: 10, attack: 10, defense: 2, want: 9},
		{name: "mid roll floors at one", roll: 10, attack: 1, defense: 10, want: 1},
		{name: "critical never negative", roll: 20, attack: 1, defense: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, roller := setupService(t)
			roller.SetRolls([]int{tt.roll})

			damage, err := svc.CalculateDamage(tt.attack, tt.defense)
			require.NoError(t, err)
			assert.Equal(t, tt.want, damage)
			assert.GreaterOrEqual(t, damage, 0)
		})
	}

	t.Run("rejects negative stats", func(t *testing.T) {
		svc, _ := setupService(t)
		_, err := svc.CalculateDamage(-1, 0)
		assert.True(t, dcerr.IsInvalidArgument(err))
	})
}

func TestPlayerAttacks(t *testing.T) {
	t.Run("hit applies damage to the monster", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetUniforms([]float64{0.1}) // under the 0.75 base hit chance
		roller.SetRolls([]int{10})         // mid roll, base damage

		player := testPlayer()
		monster := testMonster()

		result, err := svc.PlayerAttacks(player, monster)
		require.NoError(t, err)

		assert.True(t, result.Hit)
		// base = 10 - 1/2 = 10
		assert.Equal(t, 10, result.Damage)
		assert.Equal(t, 30, monster.Health)
		assert.Equal(t, monster.Health, result.RemainingHealth)
	})

	t.Run("miss leaves the monster untouched", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetUniforms([]float64{0.99})

		player := testPlayer()
		monster := testMonster()

		result, err := svc.PlayerAttacks(player, monster)
		require.NoError(t, err)

		assert.False(t, result.Hit)
		assert.Equal(t, 0, result.Damage)
		assert.Equal(t, 40, monster.Health)
		assert.NotEmpty(t, result.Message)
	})

	t.Run("monster health never goes negative", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetUniforms([]float64{0.0})
		roller.SetRolls([]int{20})

		player := testPlayer()
		player.Attack = 500
		monster := testMonster()

		result, err := svc.PlayerAttacks(player, monster)
		require.NoError(t, err)

		assert.Equal(t, 0, result.RemainingHealth)
		assert.True(t, monster.IsDefeated())
	})

	t.Run("nil inputs rejected", func(t *testing.T) {
		svc, _ := setupService(t)

		_, err := svc.PlayerAttacks(nil, testMonster())
		assert.True(t, dcerr.IsInvalidArgument(err))

		_, err = svc.PlayerAttacks(testPlayer(), nil)
		assert.True(t, dcerr.IsInvalidArgument(err))
	})
}

func TestMonsterAttacks(t *testing.T) {
	svc, roller := setupService(t)
	roller.SetUniforms([]float64{0.1})
	roller.SetRolls([]int{10})

	player := testPlayer()
	monster := testMonster()

	result, err := svc.MonsterAttacks(monster, player)
	require.NoError(t, err)

	assert.True(t, result.Hit)
	// base = 7 - 2/2 = 6
	assert.Equal(t, 6, result.Damage)
	assert.Equal(t, 44, player.Health)
}

func TestPlayerDefends(t *testing.T) {
	t.Run("roll of 10 or more grants half the roll", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetRolls([]int{15})

		player := testPlayer()

		result, err := svc.PlayerDefends(player)
		require.NoError(t, err)

		assert.Equal(t, 7, result.BonusDefense)
		assert.Equal(t, 9, player.Defense)
	})

	t.Run("low roll grants nothing", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetRolls([]int{9})

		player := testPlayer()

		result, err := svc.PlayerDefends(player)
		require.NoError(t, err)

		assert.Equal(t, 0, result.BonusDefense)
		assert.Equal(t, 2, player.Defense)
	})
}

func TestPlayerHeals(t *testing.T) {
	tests := []struct {
		name       string
		roll       int
		amount     int
		wantHealed int
	}{
		{name: "high roll heals extra", roll: 18, amount: 10, wantHealed: 15},
		{name: "low roll heals half", roll: 3, amount: 10, wantHealed: 5},
		{name: "mid roll heals flat", roll: 10, amount: 10, wantHealed: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, roller := setupService(t)
			roller.SetRolls([]int{tt.roll})

			player := testPlayer()
			player.Health = 20

			result, err := svc.PlayerHeals(player, tt.amount)
			require.NoError(t, err)

			assert.Equal(t, tt.wantHealed, result.AmountHealed)
			assert.Equal(t, 20+tt.wantHealed, player.Health)
		})
	}

	t.Run("capped at max health", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetRolls([]int{10})

		player := testPlayer()
		player.Health = 48

		result, err := svc.PlayerHeals(player, 10)
		require.NoError(t, err)

		assert.Equal(t, 2, result.AmountHealed)
		assert.Equal(t, player.MaxHealth, player.Health)
	})
}

func TestPlayerFlees(t *testing.T) {
	t.Run("succeeds at 12 or more with level bonus", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetRolls([]int{11})

		player := testPlayer()
		player.Level = 5 // +1 bonus

		fled, err := svc.PlayerFlees(player)
		require.NoError(t, err)
		assert.True(t, fled)
	})

	t.Run("fails below the threshold", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetRolls([]int{11})

		player := testPlayer()

		fled, err := svc.PlayerFlees(player)
		require.NoError(t, err)
		assert.False(t, fled)
	})
}

func TestResolveVictory(t *testing.T) {
	t.Run("hard room without bonus", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetRolls([]int{10})

		player := testPlayer()
		room := &entities.Room{
			ID:               "r1",
			Difficulty:       entities.DifficultyHard,
			ExperienceReward: 100,
			GoldReward:       50,
		}

		result, err := svc.ResolveVictory(player, room)
		require.NoError(t, err)

		assert.Equal(t, 150, result.ExperienceGained)
		assert.Equal(t, 75, result.GoldGained)
		assert.False(t, result.BonusApplied)
		assert.True(t, room.IsExplored)
	})

	t.Run("hard room with bonus roll", func(t *testing.T) {
		svc, roller := setupService(t)
		roller.SetRolls([]int{15})

		player := testPlayer()
		room := &entities.Room{
			ID:               "r1",
			Difficulty:       entities.DifficultyHard,
			ExperienceReward: 100,
			GoldReward:       50,
		}

		result, err := svc.ResolveVictory(player, room)
		require.NoError(t, err)

		assert.Equal(t, 170, result.ExperienceGained)
		assert.True(t, result.BonusApplied)
	})
}

func TestResolveDefeat(t *testing.T) {
	svc, _ := setupService(t)

	player := testPlayer()
	player.Gold = 100
	player.MaxHealth = 55
	player.Health = 0
	room := &entities.Room{ID: "r1", Difficulty: entities.DifficultyExtreme}

	result, err := svc.ResolveDefeat(player, room)
	require.NoError(t, err)

	assert.Equal(t, 25, result.GoldLost)
	assert.Equal(t, 75, player.Gold)
	// floor(55 * 0.1)
	assert.Equal(t, 5, player.Health)
	assert.Equal(t, 5, result.HealthRestored)
	assert.GreaterOrEqual(t, player.Gold, 0)
}
