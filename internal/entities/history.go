package entities

import "time"

// GameHistory records the dungeons a player has completed
type GameHistory struct {
	ID                  string    `json:"id"`
	PlayerID            string    `json:"player_id"`
	CompletedDungeonIDs []string  `json:"completed_dungeon_ids"`
	DatePlayed          time.Time `json:"date_played"`
}

// AddDungeon appends a completed dungeon, skipping duplicates
func (h *GameHistory) AddDungeon(dungeonID string, playedAt time.Time) bool {
	for _, id := range h.CompletedDungeonIDs {
		if id == dungeonID {
			return false
		}
	}
	h.CompletedDungeonIDs = append(h.CompletedDungeonIDs, dungeonID)
	h.DatePlayed = playedAt
	return true
}

// TotalCompleted returns the number of completed dungeons
func (h *GameHistory) TotalCompleted() int {
	return len(h.CompletedDungeonIDs)
}
