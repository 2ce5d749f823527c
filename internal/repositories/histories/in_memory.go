package histories

import (
	"context"
	"sync"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu        sync.RWMutex
	histories map[string]*entities.GameHistory
}

// NewInMemoryRepository creates a new in-memory game history repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		histories: make(map[string]*entities.GameHistory),
	}
}

func (r *inMemoryRepository) Save(ctx context.Context, history *entities.GameHistory) error {
	if history == nil {
		return dcerr.InvalidArgument("history cannot be nil")
	}
	if history.PlayerID == "" {
		return dcerr.InvalidArgument("player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.histories[history.PlayerID] = copyHistory(history)

	return nil
}

func (r *inMemoryRepository) GetByPlayer(ctx context.Context, playerID string) (*entities.GameHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, exists := r.histories[playerID]
	if !exists {
		return nil, dcerr.NotFoundf("no history for player: %s", playerID)
	}

	return copyHistory(history), nil
}

func copyHistory(history *entities.GameHistory) *entities.GameHistory {
	historyCopy := *history
	if history.CompletedDungeonIDs != nil {
		historyCopy.CompletedDungeonIDs = make([]string, len(history.CompletedDungeonIDs))
		copy(historyCopy.CompletedDungeonIDs, history.CompletedDungeonIDs)
	}
	return &historyCopy
}
