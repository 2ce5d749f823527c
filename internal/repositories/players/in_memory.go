package players

import (
	"context"
	"fmt"
	"sync"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu        sync.RWMutex
	players   map[string]*entities.Player
	usernames map[string]string // username -> playerID
}

// NewInMemoryRepository creates a new in-memory player repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		players:   make(map[string]*entities.Player),
		usernames: make(map[string]string),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return dcerr.InvalidArgument("player cannot be nil")
	}
	if player.ID == "" {
		return dcerr.InvalidArgument("player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[player.ID]; exists {
		return dcerr.AlreadyExists(fmt.Sprintf("player with ID %s already exists", player.ID))
	}
	if existingID, exists := r.usernames[player.Username]; exists {
		return dcerr.AlreadyExists(fmt.Sprintf("username %s already in use by player %s", player.Username, existingID))
	}

	r.players[player.ID] = copyPlayer(player)
	r.usernames[player.Username] = player.ID

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*entities.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, exists := r.players[id]
	if !exists {
		return nil, dcerr.NotFoundf("player not found: %s", id)
	}

	return copyPlayer(player), nil
}

func (r *inMemoryRepository) GetByUsername(ctx context.Context, username string) (*entities.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.usernames[username]
	if !exists {
		return nil, dcerr.NotFoundf("no player with username: %s", username)
	}

	player, exists := r.players[id]
	if !exists {
		return nil, dcerr.NotFoundf("player not found: %s", id)
	}

	return copyPlayer(player), nil
}

func (r *inMemoryRepository) Update(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return dcerr.InvalidArgument("player cannot be nil")
	}
	if player.ID == "" {
		return dcerr.InvalidArgument("player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.players[player.ID]
	if !exists {
		return dcerr.NotFoundf("player not found: %s", player.ID)
	}

	if existing.Username != player.Username {
		delete(r.usernames, existing.Username)
		r.usernames[player.Username] = player.ID
	}

	r.players[player.ID] = copyPlayer(player)

	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.players[id]
	if !exists {
		return dcerr.NotFoundf("player not found: %s", id)
	}

	delete(r.usernames, player.Username)
	delete(r.players, id)

	return nil
}

func (r *inMemoryRepository) List(ctx context.Context) ([]*entities.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]*entities.Player, 0, len(r.players))
	for _, player := range r.players {
		players = append(players, copyPlayer(player))
	}

	return players, nil
}

// copyPlayer returns a copy safe from external modification, including the
// inventory slice.
func copyPlayer(player *entities.Player) *entities.Player {
	playerCopy := *player
	if player.Inventory != nil {
		playerCopy.Inventory = make([]*entities.Artifact, len(player.Inventory))
		for i, artifact := range player.Inventory {
			artifactCopy := *artifact
			playerCopy.Inventory[i] = &artifactCopy
		}
	}
	return &playerCopy
}
