package artifacts

//go:generate mockgen -destination=mock/mock_repository.go -package=mockartifacts -source=repository.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
)

// Repository defines the interface for artifact storage
type Repository interface {
	// Create creates a new artifact
	Create(ctx context.Context, artifact *entities.Artifact) error

	// Get retrieves an artifact by ID
	Get(ctx context.Context, id string) (*entities.Artifact, error)

	// Update updates an existing artifact
	Update(ctx context.Context, artifact *entities.Artifact) error

	// Delete removes an artifact
	Delete(ctx context.Context, id string) error

	// List retrieves all artifacts
	List(ctx context.Context) ([]*entities.Artifact, error)

	// ListByRarity retrieves all artifacts of a given rarity
	ListByRarity(ctx context.Context, rarity entities.Rarity) ([]*entities.Artifact, error)
}
