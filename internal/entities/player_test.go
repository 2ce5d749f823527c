package entities_test

import (
	"testing"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_AddExperience(t *testing.T) {
	t.Run("accumulates below the cap", func(t *testing.T) {
		player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")

		player.AddExperience(50)

		assert.Equal(t, 1, player.Level)
		assert.Equal(t, 50, player.ExperiencePoints)
		assert.Equal(t, 100, player.LevelCap)
	})

	t.Run("levels up and rolls over remainder", func(t *testing.T) {
		player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")
		player.TakeDamage(40)

		player.AddExperience(150)

		assert.Equal(t, 2, player.Level)
		assert.Equal(t, 50, player.ExperiencePoints)
		assert.Equal(t, 200, player.LevelCap)
		assert.Equal(t, 110, player.MaxHealth)
		assert.Equal(t, 110, player.Health, "level-up fully heals")
		assert.Equal(t, 12, player.Attack)
		assert.Equal(t, 6, player.Defense)
	})

	t.Run("handles multi-level gains in one call", func(t *testing.T) {
		player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")

		// 100 + 200 = 300 consumed, 50 left over
		player.AddExperience(350)

		assert.Equal(t, 3, player.Level)
		assert.Equal(t, 50, player.ExperiencePoints)
		assert.Equal(t, 300, player.LevelCap)
	})

	t.Run("total delta is split-invariant", func(t *testing.T) {
		once := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")
		split := entities.NewPlayer("p2", "hero2", "hero2@example.com", "hash")

		once.AddExperience(150)
		split.AddExperience(90)
		split.AddExperience(60)

		assert.Equal(t, once.Level, split.Level)
		assert.Equal(t, once.ExperiencePoints, split.ExperiencePoints)
		assert.Equal(t, once.LevelCap, split.LevelCap)
	})

	t.Run("normalized invariant holds", func(t *testing.T) {
		player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")

		for _, points := range []int{0, 1, 99, 100, 101, 550, 10000} {
			player.AddExperience(points)
			assert.GreaterOrEqual(t, player.ExperiencePoints, 0)
			assert.Less(t, player.ExperiencePoints, player.LevelCap)
		}
	})
}

func TestPlayer_Gold(t *testing.T) {
	t.Run("remove beyond balance fails without mutation", func(t *testing.T) {
		player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")
		player.AddGold(50)

		ok := player.RemoveGold(100)

		assert.False(t, ok)
		assert.Equal(t, 50, player.Gold)
	})

	t.Run("remove within balance succeeds", func(t *testing.T) {
		player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")
		player.AddGold(50)

		ok := player.RemoveGold(30)

		assert.True(t, ok)
		assert.Equal(t, 20, player.Gold)
	})

	t.Run("gold never goes negative", func(t *testing.T) {
		player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")

		player.RemoveGold(10)
		assert.Equal(t, 0, player.Gold)
	})
}

func TestPlayer_HealthBounds(t *testing.T) {
	player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")

	player.TakeDamage(9999)
	assert.Equal(t, 0, player.Health)
	assert.True(t, player.IsDead())

	player.Heal(9999)
	assert.Equal(t, player.MaxHealth, player.Health)
}

func TestPlayer_Inventory(t *testing.T) {
	player := entities.NewPlayer("p1", "hero", "hero@example.com", "hash")
	sword := &entities.Artifact{ID: "a1", Name: "Rusty Sword", Rarity: entities.RarityCommon}

	player.AddArtifact(sword)
	require.Len(t, player.Inventory, 1)

	t.Run("remove missing artifact is a no-op failure", func(t *testing.T) {
		ok := player.RemoveArtifact("missing")
		assert.False(t, ok)
		assert.Len(t, player.Inventory, 1)
	})

	t.Run("remove by identity", func(t *testing.T) {
		ok := player.RemoveArtifact("a1")
		assert.True(t, ok)
		assert.Empty(t, player.Inventory)
	})
}
