package entities

// PlayerAction represents the action a player has currently committed to
type PlayerAction string

const (
	ActionNone   PlayerAction = "none"
	ActionFight  PlayerAction = "fight"
	ActionDefend PlayerAction = "defend"
	ActionHeal   PlayerAction = "heal"
	ActionFlee   PlayerAction = "flee"
)

// Player is the playable account variant with its combat and progression state
type Player struct {
	User

	Level            int          `json:"level"`
	ExperiencePoints int          `json:"experience_points"`
	LevelCap         int          `json:"level_cap"` // XP needed for the next level
	Gold             int          `json:"gold"`
	Health           int          `json:"health"`
	MaxHealth        int          `json:"max_health"`
	Attack           int          `json:"attack"`
	Defense          int          `json:"defense"`
	Action           PlayerAction `json:"action"`
	Inventory        []*Artifact  `json:"inventory"`
	HighScore        *HighScore   `json:"high_score,omitempty"`
	IsActive         bool         `json:"is_active"`
}

// NewPlayer creates a level-one player with starting stats
func NewPlayer(id, username, email, passwordHash string) *Player {
	return &Player{
		User: User{
			ID:           id,
			Username:     username,
			Email:        email,
			PasswordHash: passwordHash,
			Kind:         UserKindPlayer,
		},
		Level:     1,
		LevelCap:  100,
		Health:    100,
		MaxHealth: 100,
		Attack:    10,
		Defense:   5,
		Action:    ActionNone,
		IsActive:  true,
	}
}

// AddExperience accumulates experience and applies level-ups. The loop
// handles multi-level gains in one call; each level adds 100 to the cap,
// 10 max health (with a full heal), 2 attack, and 1 defense. Leaves
// 0 <= ExperiencePoints < LevelCap.
func (p *Player) AddExperience(points int) {
	if points < 0 {
		return
	}

	p.ExperiencePoints += points

	for p.ExperiencePoints >= p.LevelCap {
		p.ExperiencePoints -= p.LevelCap
		p.Level++
		p.LevelCap += 100

		p.MaxHealth += 10
		p.Health = p.MaxHealth
		p.Attack += 2
		p.Defense++
	}
}

// AddGold credits gold to the player
func (p *Player) AddGold(amount int) {
	if amount < 0 {
		return
	}
	p.Gold += amount
}

// RemoveGold debits gold. Returns false and leaves the balance unchanged
// when the amount exceeds what the player holds.
func (p *Player) RemoveGold(amount int) bool {
	if amount < 0 || amount > p.Gold {
		return false
	}
	p.Gold -= amount
	return true
}

// Heal restores health, capped at max health. Returns the amount actually
// restored.
func (p *Player) Heal(amount int) int {
	if amount < 0 {
		return 0
	}
	before := p.Health
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	return p.Health - before
}

// TakeDamage applies damage, floored at zero
func (p *Player) TakeDamage(damage int) {
	if damage < 0 {
		return
	}
	p.Health -= damage
	if p.Health < 0 {
		p.Health = 0
	}
}

// IsDead reports whether the player has no health left
func (p *Player) IsDead() bool {
	return p.Health <= 0
}

// AddArtifact appends an artifact to the inventory
func (p *Player) AddArtifact(artifact *Artifact) {
	if artifact == nil {
		return
	}
	p.Inventory = append(p.Inventory, artifact)
}

// RemoveArtifact removes an artifact by ID. Returns false when the
// artifact is not in the inventory.
func (p *Player) RemoveArtifact(artifactID string) bool {
	for i, artifact := range p.Inventory {
		if artifact.ID == artifactID {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}
