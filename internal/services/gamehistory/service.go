package gamehistory

//go:generate mockgen -destination=mock/mock_service.go -package=mockgamehistory -source=service.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/gamesessions"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/histories"
	"github.com/hallowdale/dungeoncrawl/internal/uuid"
)

// Repository is an alias for the game history repository interface
type Repository = histories.Repository

// Service defines the game history service interface
type Service interface {
	// RecordCompletion appends a completed dungeon to the player's history,
	// skipping duplicates. Returns the updated history and whether the
	// dungeon was newly recorded.
	RecordCompletion(ctx context.Context, playerID, dungeonID string) (*entities.GameHistory, bool, error)

	// GetHistory retrieves a player's game history. Players with no
	// completions get an empty history rather than an error.
	GetHistory(ctx context.Context, playerID string) (*entities.GameHistory, error)

	// TotalCompleted returns how many distinct dungeons the player has
	// finished
	TotalCompleted(ctx context.Context, playerID string) (int, error)
}

// service implements the Service interface
type service struct {
	repository    Repository
	timeProvider  gamesessions.TimeProvider
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository                // Required
	TimeProvider  gamesessions.TimeProvider // Optional, will use real time if nil
	UUIDGenerator uuid.Generator            // Optional, will use default if nil
}

// NewService creates a new game history service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
	}

	if cfg.TimeProvider != nil {
		svc.timeProvider = cfg.TimeProvider
	} else {
		svc.timeProvider = gamesessions.RealTimeProvider{}
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) RecordCompletion(ctx context.Context, playerID, dungeonID string) (*entities.GameHistory, bool, error) {
	if playerID == "" {
		return nil, false, dcerr.InvalidArgument("player ID is required")
	}
	if dungeonID == "" {
		return nil, false, dcerr.InvalidArgument("dungeon ID is required")
	}

	history, err := s.repository.GetByPlayer(ctx, playerID)
	if err != nil {
		if !dcerr.IsNotFound(err) {
			return nil, false, dcerr.Wrap(err, "failed to load game history").
				WithMeta("player_id", playerID)
		}
		history = &entities.GameHistory{
			ID:       s.uuidGenerator.New(),
			PlayerID: playerID,
		}
	}

	added := history.AddDungeon(dungeonID, s.timeProvider.Now())
	if !added {
		return history, false, nil
	}

	if err := s.repository.Save(ctx, history); err != nil {
		return nil, false, dcerr.Wrap(err, "failed to save game history").
			WithMeta("player_id", playerID)
	}

	return history, true, nil
}

func (s *service) GetHistory(ctx context.Context, playerID string) (*entities.GameHistory, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID is required")
	}

	history, err := s.repository.GetByPlayer(ctx, playerID)
	if err != nil {
		if dcerr.IsNotFound(err) {
			return &entities.GameHistory{
				ID:       s.uuidGenerator.New(),
				PlayerID: playerID,
			}, nil
		}
		return nil, err
	}

	return history, nil
}

func (s *service) TotalCompleted(ctx context.Context, playerID string) (int, error) {
	history, err := s.GetHistory(ctx, playerID)
	if err != nil {
		return 0, err
	}

	return history.TotalCompleted(), nil
}
