package highscores

//go:generate mockgen -destination=mock/mock_repository.go -package=mockhighscores -source=repository.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
)

// Repository defines the interface for high score storage
type Repository interface {
	// Set stores or overwrites a player's high score
	Set(ctx context.Context, score *entities.HighScore) error

	// Get retrieves a player's high score
	Get(ctx context.Context, playerID string) (*entities.HighScore, error)

	// Top retrieves the n best scores, highest first
	Top(ctx context.Context, n int) ([]*entities.HighScore, error)

	// Rank returns a player's 1-based leaderboard position
	Rank(ctx context.Context, playerID string) (int, error)
}
