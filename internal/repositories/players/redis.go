package players

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

const (
	playerKeyPrefix   = "player:"
	usernameKeyPrefix = "player_username:"
	allPlayersKey     = "players"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed player repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func (r *redisRepository) Create(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return dcerr.InvalidArgument("player cannot be nil")
	}
	if player.ID == "" {
		return dcerr.InvalidArgument("player ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, playerKeyPrefix+player.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check player existence")
	}
	if exists > 0 {
		return dcerr.AlreadyExists(fmt.Sprintf("player with ID %s already exists", player.ID))
	}

	return r.set(ctx, player)
}

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.Player, error) {
	if id == "" {
		return nil, dcerr.InvalidArgument("player ID cannot be empty")
	}

	data, err := r.client.Get(ctx, playerKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("player not found: %s", id)
		}
		return nil, dcerr.Wrap(err, "failed to get player")
	}

	var player entities.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, dcerr.WrapWithCode(err, dcerr.CodeDeserializationFailed, "failed to deserialize player")
	}

	return &player, nil
}

func (r *redisRepository) GetByUsername(ctx context.Context, username string) (*entities.Player, error) {
	if username == "" {
		return nil, dcerr.InvalidArgument("username cannot be empty")
	}

	id, err := r.client.Get(ctx, usernameKeyPrefix+username).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("no player with username: %s", username)
		}
		return nil, dcerr.Wrap(err, "failed to look up username")
	}

	return r.Get(ctx, id)
}

func (r *redisRepository) Update(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return dcerr.InvalidArgument("player cannot be nil")
	}
	if player.ID == "" {
		return dcerr.InvalidArgument("player ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, playerKeyPrefix+player.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check player existence")
	}
	if exists == 0 {
		return dcerr.NotFoundf("player not found: %s", player.ID)
	}

	return r.set(ctx, player)
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	player, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, playerKeyPrefix+id)
	pipe.Del(ctx, usernameKeyPrefix+player.Username)
	pipe.SRem(ctx, allPlayersKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to delete player")
	}

	return nil
}

func (r *redisRepository) List(ctx context.Context) ([]*entities.Player, error) {
	ids, err := r.client.SMembers(ctx, allPlayersKey).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to list players")
	}

	if len(ids) == 0 {
		return []*entities.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to get players")
	}

	players := make([]*entities.Player, 0, len(values))
	for _, val := range values {
		data, ok := val.(string)
		if !ok {
			// removed between SMembers and MGet, index cleaned lazily
			continue
		}

		var player entities.Player
		if err := json.Unmarshal([]byte(data), &player); err != nil {
			continue
		}
		players = append(players, &player)
	}

	return players, nil
}

func (r *redisRepository) set(ctx context.Context, player *entities.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return dcerr.Wrap(err, "failed to serialize player")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, playerKeyPrefix+player.ID, data, 0)
	pipe.Set(ctx, usernameKeyPrefix+player.Username, player.ID, 0)
	pipe.SAdd(ctx, allPlayersKey, player.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to store player")
	}

	return nil
}
