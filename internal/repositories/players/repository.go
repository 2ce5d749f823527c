package players

//go:generate mockgen -destination=mock/mock_repository.go -package=mockplayers -source=repository.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
)

// Repository defines the interface for player storage
type Repository interface {
	// Create creates a new player
	Create(ctx context.Context, player *entities.Player) error

	// Get retrieves a player by ID
	Get(ctx context.Context, id string) (*entities.Player, error)

	// GetByUsername retrieves a player by username
	GetByUsername(ctx context.Context, username string) (*entities.Player, error)

	// Update updates an existing player
	Update(ctx context.Context, player *entities.Player) error

	// Delete removes a player
	Delete(ctx context.Context, id string) error

	// List retrieves all players
	List(ctx context.Context) ([]*entities.Player, error)
}
