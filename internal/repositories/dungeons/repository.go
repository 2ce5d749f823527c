package dungeons

//go:generate mockgen -destination=mock/mock_repository.go -package=mockdungeons -source=repository.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
)

// Repository defines the interface for dungeon storage
type Repository interface {
	// Create creates a new dungeon
	Create(ctx context.Context, dungeon *entities.Dungeon) error

	// Get retrieves a dungeon by ID
	Get(ctx context.Context, id string) (*entities.Dungeon, error)

	// Update updates an existing dungeon
	Update(ctx context.Context, dungeon *entities.Dungeon) error

	// Delete removes a dungeon
	Delete(ctx context.Context, id string) error

	// List retrieves all dungeons
	List(ctx context.Context) ([]*entities.Dungeon, error)
}
