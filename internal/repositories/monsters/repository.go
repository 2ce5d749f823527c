package monsters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockmonsters -source=repository.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
)

// Repository defines the interface for monster storage
type Repository interface {
	// Create creates a new monster
	Create(ctx context.Context, monster *entities.Monster) error

	// Get retrieves a monster by ID
	Get(ctx context.Context, id string) (*entities.Monster, error)

	// Update updates an existing monster
	Update(ctx context.Context, monster *entities.Monster) error

	// Delete removes a monster
	Delete(ctx context.Context, id string) error

	// List retrieves all monsters
	List(ctx context.Context) ([]*entities.Monster, error)

	// ListByLevelRange retrieves monsters whose level falls within [min, max]
	ListByLevelRange(ctx context.Context, minLevel, maxLevel int) ([]*entities.Monster, error)
}
