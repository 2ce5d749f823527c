package artifact

//go:generate mockgen -destination=mock/mock_service.go -package=mockartifact -source=service.go

import (
	"context"
	"fmt"

	"github.com/hallowdale/dungeoncrawl/internal/dice"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/artifacts"
	"github.com/hallowdale/dungeoncrawl/internal/uuid"
)

// Repository is an alias for the artifact repository interface
type Repository = artifacts.Repository

// Rarity draw weights, cumulative selection over the running total
var rarityWeights = []struct {
	rarity entities.Rarity
	weight int
}{
	{entities.RarityCommon, 50},
	{entities.RarityRare, 30},
	{entities.RarityEpic, 15},
	{entities.RarityLegendary, 4},
	{entities.RarityMythical, 1},
}

// Name pools keyed by rarity
var artifactNames = map[entities.Rarity][]string{
	entities.RarityCommon:    {"Rusty Sword", "Worn Shield", "Leather Boots"},
	entities.RarityRare:      {"Silver Dagger", "Enchanted Ring", "Magic Cloak"},
	entities.RarityEpic:      {"Dragonslayer", "Crown of Kings", "Phoenix Feather"},
	entities.RarityLegendary: {"Excalibur", "Hammer of Thor", "Holy Grail"},
	entities.RarityMythical:  {"Eye of Eternity", "Essence of the Void", "Celestial Blade"},
}

// Service defines the artifact service interface
type Service interface {
	// CreateArtifact stores an artifact
	CreateArtifact(ctx context.Context, input *CreateArtifactInput) (*entities.Artifact, error)

	// GetArtifact retrieves an artifact by ID
	GetArtifact(ctx context.Context, artifactID string) (*entities.Artifact, error)

	// DeleteArtifact removes an artifact
	DeleteArtifact(ctx context.Context, artifactID string) error

	// ListArtifacts retrieves all artifacts
	ListArtifacts(ctx context.Context) ([]*entities.Artifact, error)

	// ListByRarity retrieves artifacts of a given rarity
	ListByRarity(ctx context.Context, rarity entities.Rarity) ([]*entities.Artifact, error)

	// GenerateArtifact draws a rarity from the weighted table and names the
	// artifact from that rarity's pool. The result is not persisted.
	GenerateArtifact() (*entities.Artifact, error)
}

// CreateArtifactInput contains data for creating an artifact
type CreateArtifactInput struct {
	Name        string
	Description string
	Rarity      entities.Rarity
}

// service implements the Service interface
type service struct {
	repository    Repository
	roller        dice.Roller
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository     // Required
	Roller        dice.Roller    // Required
	UUIDGenerator uuid.Generator // Optional, will use default if nil
}

// NewService creates a new artifact service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		repository: cfg.Repository,
		roller:     cfg.Roller,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) CreateArtifact(ctx context.Context, input *CreateArtifactInput) (*entities.Artifact, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}
	if input.Name == "" {
		return nil, dcerr.InvalidArgument("artifact name is required")
	}
	if !input.Rarity.IsValid() {
		return nil, dcerr.InvalidArgumentf("invalid rarity: %s", input.Rarity)
	}

	artifact := &entities.Artifact{
		ID:          s.uuidGenerator.New(),
		Name:        input.Name,
		Description: input.Description,
		Rarity:      input.Rarity,
	}

	if err := s.repository.Create(ctx, artifact); err != nil {
		return nil, dcerr.Wrap(err, "failed to create artifact")
	}

	return artifact, nil
}

func (s *service) GetArtifact(ctx context.Context, artifactID string) (*entities.Artifact, error) {
	if artifactID == "" {
		return nil, dcerr.InvalidArgument("artifact ID is required")
	}

	return s.repository.Get(ctx, artifactID)
}

func (s *service) DeleteArtifact(ctx context.Context, artifactID string) error {
	if artifactID == "" {
		return dcerr.InvalidArgument("artifact ID is required")
	}

	return s.repository.Delete(ctx, artifactID)
}

func (s *service) ListArtifacts(ctx context.Context) ([]*entities.Artifact, error) {
	return s.repository.List(ctx)
}

func (s *service) ListByRarity(ctx context.Context, rarity entities.Rarity) ([]*entities.Artifact, error) {
	return s.repository.ListByRarity(ctx, rarity)
}

func (s *service) GenerateArtifact() (*entities.Artifact, error) {
	rarity := s.drawRarity()

	names := artifactNames[rarity]
	name := names[s.intn(len(names))]

	return &entities.Artifact{
		ID:          s.uuidGenerator.New(),
		Name:        name,
		Description: fmt.Sprintf("A %s artifact found in the depths of the dungeon.", rarity),
		Rarity:      rarity,
	}, nil
}

func (s *service) drawRarity() entities.Rarity {
	total := 0
	for _, rw := range rarityWeights {
		total += rw.weight
	}

	draw := s.intn(total)

	cumulative := 0
	for _, rw := range rarityWeights {
		cumulative += rw.weight
		if draw < cumulative {
			return rw.rarity
		}
	}

	return entities.RarityCommon
}

func (s *service) intn(n int) int {
	v := int(s.roller.Uniform() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
