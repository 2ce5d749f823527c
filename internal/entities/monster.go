package entities

// MonsterType is the closed set of monster flavors
type MonsterType string

const (
	MonsterTypeDragon    MonsterType = "dragon"
	MonsterTypeGoblin    MonsterType = "goblin"
	MonsterTypeTroll     MonsterType = "troll"
	MonsterTypeUndead    MonsterType = "undead"
	MonsterTypeBeast     MonsterType = "beast"
	MonsterTypeDemon     MonsterType = "demon"
	MonsterTypeElemental MonsterType = "elemental"
	MonsterTypeHumanoid  MonsterType = "humanoid"
)

// MonsterTypes lists all monster types
func MonsterTypes() []MonsterType {
	return []MonsterType{
		MonsterTypeDragon,
		MonsterTypeGoblin,
		MonsterTypeTroll,
		MonsterTypeUndead,
		MonsterTypeBeast,
		MonsterTypeDemon,
		MonsterTypeElemental,
		MonsterTypeHumanoid,
	}
}

// Monster is a generated opponent. It is mutated only by combat (health
// depletion) and discarded with its owning room.
type Monster struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Level   int         `json:"level"`
	Health  int         `json:"health"`
	Attack  int         `json:"attack"`
	Defense int         `json:"defense"`
	Type    MonsterType `json:"type"`
}

// TakeDamage applies damage, floored at zero
func (m *Monster) TakeDamage(damage int) {
	if damage < 0 {
		return
	}
	m.Health -= damage
	if m.Health < 0 {
		m.Health = 0
	}
}

// IsDefeated reports whether the monster has no health left
func (m *Monster) IsDefeated() bool {
	return m.Health <= 0
}
