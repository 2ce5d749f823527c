package gamesessions

//go:generate mockgen -destination=mock/mock_repository.go -package=mockgamesessions -source=repository.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
)

// Repository defines the interface for game session storage
type Repository interface {
	// Create creates a new game session
	Create(ctx context.Context, session *entities.GameSession) error

	// Get retrieves a game session by ID
	Get(ctx context.Context, id string) (*entities.GameSession, error)

	// Update updates an existing game session
	Update(ctx context.Context, session *entities.GameSession) error

	// Delete removes a game session
	Delete(ctx context.Context, id string) error

	// ListByPlayer retrieves all game sessions for a player
	ListByPlayer(ctx context.Context, playerID string) ([]*entities.GameSession, error)

	// GetActiveByPlayer retrieves the player's single active session.
	// Returns a not found error when the player has none.
	GetActiveByPlayer(ctx context.Context, playerID string) (*entities.GameSession, error)
}
