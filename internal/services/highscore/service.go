package highscore

//go:generate mockgen -destination=mock/mock_service.go -package=mockhighscore -source=service.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/gamesessions"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/highscores"
)

// Repository is an alias for the high score repository interface
type Repository = highscores.Repository

// Service defines the high score service interface
type Service interface {
	// UpdateIfHigher records the score only when it beats the player's
	// current best. Returns the stored best either way, and whether the
	// board changed.
	UpdateIfHigher(ctx context.Context, playerID string, score int) (*entities.HighScore, bool, error)

	// GetHighScore retrieves a player's best score
	GetHighScore(ctx context.Context, playerID string) (*entities.HighScore, error)

	// Top retrieves the n best scores, highest first
	Top(ctx context.Context, n int) ([]*entities.HighScore, error)

	// Rank returns a player's 1-based leaderboard position
	Rank(ctx context.Context, playerID string) (int, error)
}

// service implements the Service interface
type service struct {
	repository   Repository
	timeProvider gamesessions.TimeProvider
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository   Repository                // Required
	TimeProvider gamesessions.TimeProvider // Optional, will use real time if nil
}

// NewService creates a new high score service
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

	return svc
}

func (s *service) UpdateIfHigher(ctx context.Context, playerID string, score int) (*entities.HighScore, bool, error) {
	if playerID == "" {
		return nil, false, dcerr.InvalidArgument("player ID is required")
	}
	if score < 0 {
		return nil, false, dcerr.InvalidArgumentf("score cannot be negative, got %d", score)
	}

	current, err := s.repository.Get(ctx, playerID)
	if err != nil && !dcerr.IsNotFound(err) {
		return nil, false, dcerr.Wrap(err, "failed to load current high score").
			WithMeta("player_id", playerID)
	}

	if current != nil && current.Score >= score {
		return current, false, nil
	}

	best := &entities.HighScore{
		PlayerID:     playerID,
		Score:        score,
		DateAchieved: s.timeProvider.Now(),
	}

	if err := s.repository.Set(ctx, best); err != nil {
		return nil, false, dcerr.Wrap(err, "failed to store high score").
			WithMeta("player_id", playerID)
	}

	return best, true, nil
}

func (s *service) GetHighScore(ctx context.Context, playerID string) (*entities.HighScore, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID is required")
	}

	return s.repository.Get(ctx, playerID)
}

func (s *service) Top(ctx context.Context, n int) ([]*entities.HighScore, error) {
	if n < 1 {
		return nil, dcerr.InvalidArgumentf("top size must be at least 1, got %d", n)
	}

	return s.repository.Top(ctx, n)
}

func (s *service) Rank(ctx context.Context, playerID string) (int, error) {
	if playerID == "" {
		return 0, dcerr.InvalidArgument("player ID is required")
	}

	return s.repository.Rank(ctx, playerID)
}
