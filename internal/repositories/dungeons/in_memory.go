package dungeons

import (
	"context"
	"fmt"
	"sync"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu       sync.RWMutex
	dungeons map[string]*entities.Dungeon
}

// NewInMemoryRepository creates a new in-memory dungeon repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		dungeons: make(map[string]*entities.Dungeon),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, dungeon *entities.Dungeon) error {
	if dungeon == nil {
		return dcerr.InvalidArgument("dungeon cannot be nil")
	}
	if dungeon.ID == "" {
		return dcerr.InvalidArgument("dungeon ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dungeons[dungeon.ID]; exists {
		return dcerr.AlreadyExists(fmt.Sprintf("dungeon with ID %s already exists", dungeon.ID))
	}

	r.dungeons[dungeon.ID] = copyDungeon(dungeon)
	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*entities.Dungeon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dungeon, exists := r.dungeons[id]
	if !exists {
		return nil, dcerr.NotFoundf("dungeon not found: %s", id)
	}

	return copyDungeon(dungeon), nil
}

func (r *inMemoryRepository) Update(ctx context.Context, dungeon *entities.Dungeon) error {
	if dungeon == nil {
		return dcerr.InvalidArgument("dungeon cannot be nil")
	}
	if dungeon.ID == "" {
		return dcerr.InvalidArgument("dungeon ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dungeons[dungeon.ID]; !exists {
		return dcerr.NotFoundf("dungeon not found: %s", dungeon.ID)
	}

	r.dungeons[dungeon.ID] = copyDungeon(dungeon)
	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dungeons[id]; !exists {
		return dcerr.NotFoundf("dungeon not found: %s", id)
	}

	delete(r.dungeons, id)
	return nil
}

func (r *inMemoryRepository) List(ctx context.Context) ([]*entities.Dungeon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dungeons := make([]*entities.Dungeon, 0, len(r.dungeons))
	for _, dungeon := range r.dungeons {
		dungeons = append(dungeons, copyDungeon(dungeon))
	}

	return dungeons, nil
}

// copyDungeon returns a copy safe from external modification, rooms and
// artifact included.
func copyDungeon(dungeon *entities.Dungeon) *entities.Dungeon {
	dungeonCopy := *dungeon
	if dungeon.Rooms != nil {
		dungeonCopy.Rooms = make([]*entities.Room, len(dungeon.Rooms))
		for i, room := range dungeon.Rooms {
			roomCopy := *room
			if room.Monster != nil {
				monsterCopy := *room.Monster
				roomCopy.Monster = &monsterCopy
			}
			dungeonCopy.Rooms[i] = &roomCopy
		}
	}
	if dungeon.Artifact != nil {
		artifactCopy := *dungeon.Artifact
		dungeonCopy.Artifact = &artifactCopy
	}
	return &dungeonCopy
}
