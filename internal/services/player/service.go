package player

//go:generate mockgen -destination=mock/mock_service.go -package=mockplayer -source=service.go

import (
	"context"
	"strings"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/histories"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/players"
	"github.com/hallowdale/dungeoncrawl/internal/uuid"
)

// Repository is an alias for the player repository interface
type Repository = players.Repository

// Service defines the player service interface
type Service interface {
	// CreatePlayer creates a new level-one player
	CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*entities.Player, error)

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, playerID string) (*entities.Player, error)

	// GetPlayerByUsername retrieves a player by username
	GetPlayerByUsername(ctx context.Context, username string) (*entities.Player, error)

	// ListPlayers retrieves all players
	ListPlayers(ctx context.Context) ([]*entities.Player, error)

	// UpdatePlayer persists a mutated player entity
	UpdatePlayer(ctx context.Context, player *entities.Player) error

	// DeletePlayer removes a player
	DeletePlayer(ctx context.Context, playerID string) error

	// AddExperience grants experience and applies any level-ups
	AddExperience(ctx context.Context, playerID string, points int) (*entities.Player, error)

	// AddGold credits gold to the player
	AddGold(ctx context.Context, playerID string, amount int) (*entities.Player, error)

	// SpendGold debits gold, failing when the balance is too low
	SpendGold(ctx context.Context, playerID string, amount int) (*entities.Player, error)

	// GrantArtifact places an artifact in the player's inventory
	GrantArtifact(ctx context.Context, playerID string, artifact *entities.Artifact) error

	// DropArtifact removes an artifact from the player's inventory
	DropArtifact(ctx context.Context, playerID, artifactID string) error

	// GetStats returns a read-only summary of a player's progression
	GetStats(ctx context.Context, playerID string) (*Stats, error)
}

// CreatePlayerInput contains data for creating a player
type CreatePlayerInput struct {
	Username     string
	Email        string
	PasswordHash string
}

// Stats is a read-only progression summary
type Stats struct {
	PlayerID             string
	Username             string
	Level                int
	ExperiencePoints     int
	LevelCap             int
	ExperiencePercentage float64
	Gold                 int
	Health               int
	MaxHealth            int
	HealthPercentage     float64
	Attack               int
	Defense              int
	ArtifactCount        int
	HighScore            int
	DungeonsCompleted    int
}

// service implements the Service interface
type service struct {
	repository    Repository
	histories     histories.Repository
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository        Repository           // Required
	HistoryRepository histories.Repository // Optional, stats omit completions if nil
	UUIDGenerator     uuid.Generator       // Optional, will use default if nil
}

// NewService creates a new player service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
		histories:  cfg.HistoryRepository,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) CreatePlayer(ctx context.Context, input *CreatePlayerInput) (*entities.Player, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Username) == "" {
		return nil, dcerr.InvalidArgument("username is required")
	}

	player := entities.NewPlayer(s.uuidGenerator.New(), input.Username, input.Email, input.PasswordHash)

	if err := s.repository.Create(ctx, player); err != nil {
		return nil, dcerr.Wrapf(err, "failed to create player '%s'", input.Username).
			WithMeta("username", input.Username)
	}

	return player, nil
}

func (s *service) GetPlayer(ctx context.Context, playerID string) (*entities.Player, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID is required")
	}

	return s.repository.Get(ctx, playerID)
}

func (s *service) GetPlayerByUsername(ctx context.Context, username string) (*entities.Player, error) {
	if username == "" {
		return nil, dcerr.InvalidArgument("username is required")
	}

	return s.repository.GetByUsername(ctx, username)
}

func (s *service) ListPlayers(ctx context.Context) ([]*entities.Player, error) {
	return s.repository.List(ctx)
}

func (s *service) UpdatePlayer(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return dcerr.InvalidArgument("player cannot be nil")
	}

	return s.repository.Update(ctx, player)
}

func (s *service) DeletePlayer(ctx context.Context, playerID string) error {
	if playerID == "" {
		return dcerr.InvalidArgument("player ID is required")
	}

	return s.repository.Delete(ctx, playerID)
}

func (s *service) AddExperience(ctx context.Context, playerID string, points int) (*entities.Player, error) {
	if points < 0 {
		return nil, dcerr.InvalidArgumentf("experience points cannot be negative: %d", points)
	}

	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	player.AddExperience(points)

	if err := s.repository.Update(ctx, player); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist experience gain").
			WithMeta("player_id", playerID)
	}

	return player, nil
}

func (s *service) AddGold(ctx context.Context, playerID string, amount int) (*entities.Player, error) {
	if amount < 0 {
		return nil, dcerr.InvalidArgumentf("gold amount cannot be negative: %d", amount)
	}

	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	player.AddGold(amount)

	if err := s.repository.Update(ctx, player); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist gold gain").
			WithMeta("player_id", playerID)
	}

	return player, nil
}

func (s *service) SpendGold(ctx context.Context, playerID string, amount int) (*entities.Player, error) {
	if amount < 0 {
		return nil, dcerr.InvalidArgumentf("gold amount cannot be negative: %d", amount)
	}

	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !player.RemoveGold(amount) {
		return nil, dcerr.InsufficientResource("not enough gold").
			WithMeta("player_id", playerID).
			WithMeta("balance", player.Gold).
			WithMeta("requested", amount)
	}

	if err := s.repository.Update(ctx, player); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist gold spend").
			WithMeta("player_id", playerID)
	}

	return player, nil
}

func (s *service) GrantArtifact(ctx context.Context, playerID string, artifact *entities.Artifact) error {
	if artifact == nil {
		return dcerr.InvalidArgument("artifact cannot be nil")
	}

	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	player.AddArtifact(artifact)

	return s.repository.Update(ctx, player)
}

func (s *service) DropArtifact(ctx context.Context, playerID, artifactID string) error {
	if artifactID == "" {
		return dcerr.InvalidArgument("artifact ID is required")
	}

	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	if !player.RemoveArtifact(artifactID) {
		return dcerr.NotFoundf("artifact %s is not in the inventory", artifactID).
			WithMeta("player_id", playerID)
	}

	return s.repository.Update(ctx, player)
}

func (s *service) GetStats(ctx context.Context, playerID string) (*Stats, error) {
	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		PlayerID:         player.ID,
		Username:         player.Username,
		Level:            player.Level,
		ExperiencePoints: player.ExperiencePoints,
		LevelCap:         player.LevelCap,
		Gold:             player.Gold,
		Health:           player.Health,
		MaxHealth:        player.MaxHealth,
		Attack:           player.Attack,
		Defense:          player.Defense,
		ArtifactCount:    len(player.Inventory),
	}
	if player.LevelCap > 0 {
		stats.ExperiencePercentage = float64(player.ExperiencePoints) / float64(player.LevelCap) * 100
	}
	if player.MaxHealth > 0 {
		stats.HealthPercentage = float64(player.Health) / float64(player.MaxHealth) * 100
	}
	if player.HighScore != nil {
		stats.HighScore = player.HighScore.Score
	}

	if s.histories != nil {
		history, err := s.histories.GetByPlayer(ctx, playerID)
		if err != nil && !dcerr.IsNotFound(err) {
			return nil, dcerr.Wrap(err, "failed to load completion history").
				WithMeta("player_id", playerID)
		}
		if history != nil {
			stats.DungeonsCompleted = history.TotalCompleted()
		}
	}

	return stats, nil
}
