package rooms

//go:generate mockgen -destination=mock/mock_repository.go -package=mockrooms -source=repository.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
)

// Repository defines the interface for room storage
type Repository interface {
	// Create creates a new room
	Create(ctx context.Context, room *entities.Room) error

	// Get retrieves a room by ID
	Get(ctx context.Context, id string) (*entities.Room, error)

	// Update updates an existing room
	Update(ctx context.Context, room *entities.Room) error

	// Delete removes a room
	Delete(ctx context.Context, id string) error

	// ListByDungeon retrieves all rooms belonging to a dungeon
	ListByDungeon(ctx context.Context, dungeonID string) ([]*entities.Room, error)
}
