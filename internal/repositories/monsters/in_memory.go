package monsters

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
	monsters map[string]*entities.Monster
}

// NewInMemoryRepository creates a new in-memory monster repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		monsters: make(map[string]*entities.Monster),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, monster *entities.Monster) error {
	if monster == nil {
		return dcerr.InvalidArgument("monster cannot be nil")
	}
	if monster.ID == "" {
		return dcerr.InvalidArgument("monster ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.monsters[monster.ID]; exists {
		return dcerr.AlreadyExists(fmt.Sprintf("monster with ID %s already exists", monster.ID))
	}

	monsterCopy := *monster
	r.monsters[monster.ID] = &monsterCopy

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*entities.Monster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	monster, exists := r.monsters[id]
	if !exists {
		return nil, dcerr.NotFoundf("monster not found: %s", id)
	}

	monsterCopy := *monster
	return &monsterCopy, nil
}

func (r *inMemoryRepository) Update(ctx context.Context, monster *entities.Monster) error {
	if monster == nil {
		return dcerr.InvalidArgument("monster cannot be nil")
	}
	if monster.ID == "" {
		return dcerr.InvalidArgument("monster ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.monsters[monster.ID]; !exists {
		return dcerr.NotFoundf("monster not found: %s", monster.ID)
	}

	monsterCopy := *monster
	r.monsters[monster.ID] = &monsterCopy

	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.monsters[id]; !exists {
		return dcerr.NotFoundf("monster not found: %s", id)
	}

	delete(r.monsters, id)
	return nil
}

func (r *inMemoryRepository) List(ctx context.Context) ([]*entities.Monster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	monsters := make([]*entities.Monster, 0, len(r.monsters))
	for _, monster := range r.monsters {
		monsterCopy := *monster
		monsters = append(monsters, &monsterCopy)
	}

	return monsters, nil
}

func (r *inMemoryRepository) ListByLevelRange(ctx context.Context, minLevel, maxLevel int) ([]*entities.Monster, error) {
	if minLevel > maxLevel {
		return nil, dcerr.InvalidArgumentf("invalid level range [%d, %d]", minLevel, maxLevel)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	monsters := make([]*entities.Monster, 0)
	for _, monster := range r.monsters {
		if monster.Level >= minLevel && monster.Level <= maxLevel {
			monsterCopy := *monster
			monsters = append(monsters, &monsterCopy)
		}
	}

	return monsters, nil
}
