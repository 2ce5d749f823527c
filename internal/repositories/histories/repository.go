package histories

//go:generate mockgen -destination=mock/mock_repository.go -package=mockhistories -source=repository.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
)

// Repository defines the interface for game history storage
type Repository interface {
	// Save stores or overwrites a player's game history
	Save(ctx context.Context, history *entities.GameHistory) error

	// GetByPlayer retrieves a player's game history
	GetByPlayer(ctx context.Context, playerID string) (*entities.GameHistory, error)
}
