package artifacts

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
	artifacts map[string]*entities.Artifact
}

// NewInMemoryRepository creates a new in-memory artifact repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		artifacts: make(map[string]*entities.Artifact),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, artifact *entities.Artifact) error {
	if artifact == nil {
		return dcerr.InvalidArgument("artifact cannot be nil")
	}
	if artifact.ID == "" {
		return dcerr.InvalidArgument("artifact ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.artifacts[artifact.ID]; exists {
		return dcerr.AlreadyExists(fmt.Sprintf("artifact with ID %s already exists", artifact.ID))
	}

	artifactCopy := *artifact
	r.artifacts[artifact.ID] = &artifactCopy

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*entities.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifact, exists := r.artifacts[id]
	if !exists {
		return nil, dcerr.NotFoundf("artifact not found: %s", id)
	}

	artifactCopy := *artifact
	return &artifactCopy, nil
}

func (r *inMemoryRepository) Update(ctx context.Context, artifact *entities.Artifact) error {
	if artifact == nil {
		return dcerr.InvalidArgument("artifact cannot be nil")
	}
	if artifact.ID == "" {
		return dcerr.InvalidArgument("artifact ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.artifacts[artifact.ID]; !exists {
		return dcerr.NotFoundf("artifact not found: %s", artifact.ID)
	}

	artifactCopy := *artifact
	r.artifacts[artifact.ID] = &artifactCopy

	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.artifacts[id]; !exists {
		return dcerr.NotFoundf("artifact not found: %s", id)
	}

	delete(r.artifacts, id)
	return nil
}

func (r *inMemoryRepository) List(ctx context.Context) ([]*entities.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifacts := make([]*entities.Artifact, 0, len(r.artifacts))
	for _, artifact := range r.artifacts {
		artifactCopy := *artifact
		artifacts = append(artifacts, &artifactCopy)
	}

	return artifacts, nil
}

func (r *inMemoryRepository) ListByRarity(ctx context.Context, rarity entities.Rarity) ([]*entities.Artifact, error) {
	if !rarity.IsValid() {
		return nil, dcerr.InvalidArgumentf("invalid rarity: %s", rarity)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	artifacts := make([]*entities.Artifact, 0)
	for _, artifact := range r.artifacts {
		if artifact.Rarity == rarity {
			artifactCopy := *artifact
			artifacts = append(artifacts, &artifactCopy)
		}
	}

	return artifacts, nil
}
