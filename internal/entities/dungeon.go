package entities

// Dungeon is an ordered sequence of rooms, fixed at generation time, with
// an optional artifact reward.
type Dungeon struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Level       int       `json:"level"`
	Rooms       []*Room   `json:"rooms"`
	Artifact    *Artifact `json:"artifact,omitempty"`

	// IsExplored is set only via an explicit mark, never derived from
	// room completion.
	IsExplored bool `json:"is_explored"`
}

// RoomCount returns the number of rooms
func (d *Dungeon) RoomCount() int {
	return len(d.Rooms)
}

// RoomAt returns the room at the given traversal position
func (d *Dungeon) RoomAt(index int) (*Room, bool) {
	if index < 0 || index >= len(d.Rooms) {
		return nil, false
	}
	return d.Rooms[index], true
}

// Progress returns the explored percentage, floored. A dungeon with zero
// rooms has progress 0 and is never complete implicitly.
func (d *Dungeon) Progress() int {
	if len(d.Rooms) == 0 {
		return 0
	}

	explored := 0
	for _, room := range d.Rooms {
		if room.IsExplored {
			explored++
		}
	}

	return int(float64(explored) / float64(len(d.Rooms)) * 100)
}

// MarkExplored flips the dungeon-level explored flag
func (d *Dungeon) MarkExplored() {
	d.IsExplored = true
}
