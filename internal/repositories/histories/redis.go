package histories

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

// One history blob per player
const historyKeyPrefix = "game_history:"

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed game history repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func (r *redisRepository) Save(ctx context.Context, history *entities.GameHistory) error {
	if history == nil {
		return dcerr.InvalidArgument("history cannot be nil")
	}
	if history.PlayerID == "" {
		return dcerr.InvalidArgument("player ID cannot be empty")
	}

	data, err := json.Marshal(history)
	if err != nil {
		return dcerr.Wrap(err, "failed to serialize history")
	}

	if err := r.client.Set(ctx, historyKeyPrefix+history.PlayerID, data, 0).Err(); err != nil {
		return dcerr.Wrap(err, "failed to store history")
	}

	return nil
}

func (r *redisRepository) GetByPlayer(ctx context.Context, playerID string) (*entities.GameHistory, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID cannot be empty")
	}

	data, err := r.client.Get(ctx, historyKeyPrefix+playerID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("no history for player: %s", playerID)
		}
		return nil, dcerr.Wrap(err, "failed to get history")
	}

	var history entities.GameHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, dcerr.WrapWithCode(err, dcerr.CodeDeserializationFailed, "failed to deserialize history")
	}

	return &history, nil
}
