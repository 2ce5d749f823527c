package highscores

import (
	"context"
	"sort"
	"sync"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu     sync.RWMutex
	scores map[string]*entities.HighScore
}

// NewInMemoryRepository creates a new in-memory high score repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		scores: make(map[string]*entities.HighScore),
	}
}

func (r *inMemoryRepository) Set(ctx context.Context, score *entities.HighScore) error {
	if score == nil {
		return dcerr.InvalidArgument("high score cannot be nil")
	}
	if score.PlayerID == "" {
		return dcerr.InvalidArgument("player ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	scoreCopy := *score
	r.scores[score.PlayerID] = &scoreCopy

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, playerID string) (*entities.HighScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	score, exists := r.scores[playerID]
	if !exists {
		return nil, dcerr.NotFoundf("no high score for player: %s", playerID)
	}

	scoreCopy := *score
	return &scoreCopy, nil
}

func (r *inMemoryRepository) Top(ctx context.Context, n int) ([]*entities.HighScore, error) {
	if n < 1 {
		return nil, dcerr.InvalidArgumentf("top count must be positive, got %d", n)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sorted := make([]*entities.HighScore, 0, len(r.scores))
	for _, score := range r.scores {
		scoreCopy := *score
		sorted = append(sorted, &scoreCopy)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted, nil
}

func (r *inMemoryRepository) Rank(ctx context.Context, playerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target, exists := r.scores[playerID]
	if !exists {
		return 0, dcerr.NotFoundf("no high score for player: %s", playerID)
	}

	rank := 1
	for _, score := range r.scores {
		if score.Score > target.Score {
			rank++
		}
	}

	return rank, nil
}
