package highscores

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

const (
	highScoreKeyPrefix = "highscore:"
	leaderboardKey     = "highscores"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed high score repository.
// Scores live in a sorted set so Top and Rank are native reads.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func (r *redisRepository) Set(ctx context.Context, score *entities.HighScore) error {
	if score == nil {
		return dcerr.InvalidArgument("high score cannot be nil")
	}
	if score.PlayerID == "" {
		return dcerr.InvalidArgument("player ID cannot be empty")
	}

	data, err := json.Marshal(score)
	if err != nil {
		return dcerr.Wrap(err, "failed to serialize high score")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, highScoreKeyPrefix+score.PlayerID, data, 0)
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(score.Score),
		Member: score.PlayerID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to store high score")
	}

	return nil
}

func (r *redisRepository) Get(ctx context.Context, playerID string) (*entities.HighScore, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID cannot be empty")
	}

	data, err := r.client.Get(ctx, highScoreKeyPrefix+playerID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("no high score for player: %s", playerID)
		}
		return nil, dcerr.Wrap(err, "failed to get high score")
	}

	var score entities.HighScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, dcerr.WrapWithCode(err, dcerr.CodeDeserializationFailed, "failed to deserialize high score")
	}

	return &score, nil
}

func (r *redisRepository) Top(ctx context.Context, n int) ([]*entities.HighScore, error) {
	if n < 1 {
		return nil, dcerr.InvalidArgumentf("top count must be positive, got %d", n)
	}

	entries, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to read leaderboard")
	}

	scores := make([]*entities.HighScore, 0, len(entries))
	for _, entry := range entries {
		playerID, ok := entry.Member.(string)
		if !ok {
			continue
		}

		score, err := r.Get(ctx, playerID)
		if err != nil {
			if dcerr.IsNotFound(err) {
				// leaderboard entry without a detail blob, fall back
				scores = append(scores, &entities.HighScore{
					PlayerID: playerID,
					Score:    int(entry.Score),
				})
				continue
			}
			return nil, err
		}
		scores = append(scores, score)
	}

	return scores, nil
}

func (r *redisRepository) Rank(ctx context.Context, playerID string) (int, error) {
	if playerID == "" {
		return 0, dcerr.InvalidArgument("player ID cannot be empty")
	}

	rank, err := r.client.ZRevRank(ctx, leaderboardKey, playerID).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, dcerr.NotFoundf("no high score for player: %s", playerID)
		}
		return 0, dcerr.Wrap(err, "failed to get leaderboard rank")
	}

	return int(rank) + 1, nil
}
