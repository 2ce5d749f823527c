package entities

import (
	"time"
)

// DefaultMaxHealsPerRoom caps in-combat heals per room unless configured otherwise
const DefaultMaxHealsPerRoom = 2

// Snapshot is the structured turn-to-turn run state stored alongside the
// session row. It stays a struct inside the core and is serialized only at
// the persistence boundary.
type Snapshot struct {
	DungeonID         string     `json:"dungeon_id"`
	CurrentRoomIndex  int        `json:"current_room_index"`
	TotalRooms        int        `json:"total_rooms"`
	IsMonsterDefeated bool       `json:"is_monster_defeated"`
	IsRoomCompleted   bool       `json:"is_room_completed"`
	Score             int        `json:"score"`
	HealsUsedInRoom   int        `json:"heals_used_in_room"`
	MaxHealsPerRoom   int        `json:"max_heals_per_room"`
	Difficulty        Difficulty `json:"difficulty"`
	StartTime         time.Time  `json:"start_time"`
}

// EnterRoom repositions the snapshot at a new room and resets the
// per-room counters.
func (s *Snapshot) EnterRoom(index int) {
	s.CurrentRoomIndex = index
	s.IsMonsterDefeated = false
	s.IsRoomCompleted = false
	s.HealsUsedInRoom = 0
}

// CanHeal reports whether the per-room heal allowance has room left
func (s *Snapshot) CanHeal() bool {
	return s.HealsUsedInRoom < s.MaxHealsPerRoom
}

// OnLastRoom reports whether the snapshot points at the final room
func (s *Snapshot) OnLastRoom() bool {
	return s.CurrentRoomIndex >= s.TotalRooms-1
}

// GameSession is one player's continuous attempt at a dungeon, persisted
// across pause/resume. At most one session per player is active at a time.
type GameSession struct {
	ID               string    `json:"id"`
	PlayerID         string    `json:"player_id"`
	DungeonID        string    `json:"dungeon_id"`
	CurrentRoomID    string    `json:"current_room_id"`
	CurrentRoomIndex int       `json:"current_room_index"`
	IsActive         bool      `json:"is_active"`
	IsPaused         bool      `json:"is_paused"`
	StartTime        time.Time `json:"start_time"`
	LastSaved        time.Time `json:"last_saved"`
	Snapshot         *Snapshot `json:"snapshot,omitempty"`
}

// NewGameSession creates an active, unpaused session positioned at the
// first room.
func NewGameSession(id, playerID, dungeonID, firstRoomID string, now time.Time) *GameSession {
	return &GameSession{
		ID:            id,
		PlayerID:      playerID,
		DungeonID:     dungeonID,
		CurrentRoomID: firstRoomID,
		IsActive:      true,
		IsPaused:      false,
		StartTime:     now,
		LastSaved:     now,
	}
}

// End deactivates the session. Idempotent; the paused flag is left as-is.
// An ended session cannot be resumed, only replaced by a new one.
func (s *GameSession) End() {
	s.IsActive = false
}

// MoveToRoom updates the current room pointer. Fails when the session is
// not active.
func (s *GameSession) MoveToRoom(roomID string, index int) bool {
	if !s.IsActive {
		return false
	}
	s.CurrentRoomID = roomID
	s.CurrentRoomIndex = index
	return true
}

// MarkSaved records a checkpoint. Valid while paused as well; saving does
// not require the session to be active.
func (s *GameSession) MarkSaved(now time.Time, paused bool) {
	s.IsPaused = paused
	s.LastSaved = now
}
