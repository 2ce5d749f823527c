package entities

// Room is one discrete encounter unit within a dungeon's fixed traversal order
type Room struct {
	ID               string     `json:"id"`
	DungeonID        string     `json:"dungeon_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Level            int        `json:"level"`
	Difficulty       Difficulty `json:"difficulty"`
	Monster          *Monster   `json:"monster,omitempty"`
	IsExplored       bool       `json:"is_explored"`
	ExperienceReward int        `json:"experience_reward"`
	GoldReward       int        `json:"gold_reward"`
}

// MarkExplored flips the explored flag. The transition is monotonic:
// a room never reverts to unexplored.
func (r *Room) MarkExplored() {
	r.IsExplored = true
}

// HasMonster reports whether a living monster occupies the room
func (r *Room) HasMonster() bool {
	return r.Monster != nil && !r.Monster.IsDefeated()
}
