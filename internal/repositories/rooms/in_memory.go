package rooms

import (
	"context"
	"fmt"
	"sync"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu    sync.RWMutex
	rooms map[string]*entities.Room
}

// NewInMemoryRepository creates a new in-memory room repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		rooms: make(map[string]*entities.Room),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, room *entities.Room) error {
	if room == nil {
		return dcerr.InvalidArgument("room cannot be nil")
	}
	if room.ID == "" {
		return dcerr.InvalidArgument("room ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return dcerr.AlreadyExists(fmt.Sprintf("room with ID %s already exists", room.ID))
	}

	r.rooms[room.ID] = copyRoom(room)
	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*entities.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, exists := r.rooms[id]
	if !exists {
		return nil, dcerr.NotFoundf("room not found: %s", id)
	}

	return copyRoom(room), nil
}

func (r *inMemoryRepository) Update(ctx context.Context, room *entities.Room) error {
	if room == nil {
		return dcerr.InvalidArgument("room cannot be nil")
	}
	if room.ID == "" {
		return dcerr.InvalidArgument("room ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; !exists {
		return dcerr.NotFoundf("room not found: %s", room.ID)
	}

	r.rooms[room.ID] = copyRoom(room)
	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[id]; !exists {
		return dcerr.NotFoundf("room not found: %s", id)
	}

	delete(r.rooms, id)
	return nil
}

func (r *inMemoryRepository) ListByDungeon(ctx context.Context, dungeonID string) ([]*entities.Room, error) {
	if dungeonID == "" {
		return nil, dcerr.InvalidArgument("dungeon ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*entities.Room, 0)
	for _, room := range r.rooms {
		if room.DungeonID == dungeonID {
			rooms = append(rooms, copyRoom(room))
		}
	}

	return rooms, nil
}

// copyRoom returns a copy safe from external modification, including the
// embedded monster.
func copyRoom(room *entities.Room) *entities.Room {
	roomCopy := *room
	if room.Monster != nil {
		monsterCopy := *room.Monster
		roomCopy.Monster = &monsterCopy
	}
	return &roomCopy
}
