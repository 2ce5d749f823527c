package dungeons

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

const (
	dungeonKeyPrefix = "dungeon:"
	allDungeonsKey   = "dungeons"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed dungeon repository.
// Dungeons are stored as one JSON blob with their rooms embedded so a run
// loads with a single read.
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func (r *redisRepository) Create(ctx context.Context, dungeon *entities.Dungeon) error {
	if dungeon == nil {
		return dcerr.InvalidArgument("dungeon cannot be nil")
	}
	if dungeon.ID == "" {
		return dcerr.InvalidArgument("dungeon ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, dungeonKeyPrefix+dungeon.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check dungeon existence")
	}
	if exists > 0 {
		return dcerr.AlreadyExists(fmt.Sprintf("dungeon with ID %s already exists", dungeon.ID))
	}

	return r.set(ctx, dungeon)
}

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.Dungeon, error) {
	if id == "" {
		return nil, dcerr.InvalidArgument("dungeon ID cannot be empty")
	}

	data, err := r.client.Get(ctx, dungeonKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("dungeon not found: %s", id)
		}
		return nil, dcerr.Wrap(err, "failed to get dungeon")
	}

	var dungeon entities.Dungeon
	if err := json.Unmarshal(data, &dungeon); err != nil {
		return nil, dcerr.WrapWithCode(err, dcerr.CodeDeserializationFailed, "failed to deserialize dungeon")
	}

	return &dungeon, nil
}

func (r *redisRepository) Update(ctx context.Context, dungeon *entities.Dungeon) error {
	if dungeon == nil {
		return dcerr.InvalidArgument("dungeon cannot be nil")
	}
	if dungeon.ID == "" {
		return dcerr.InvalidArgument("dungeon ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, dungeonKeyPrefix+dungeon.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check dungeon existence")
	}
	if exists == 0 {
		return dcerr.NotFoundf("dungeon not found: %s", dungeon.ID)
	}

	return r.set(ctx, dungeon)
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dcerr.InvalidArgument("dungeon ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, dungeonKeyPrefix+id)
	pipe.SRem(ctx, allDungeonsKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to delete dungeon")
	}

	return nil
}

func (r *redisRepository) List(ctx context.Context) ([]*entities.Dungeon, error) {
	ids, err := r.client.SMembers(ctx, allDungeonsKey).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to list dungeons")
	}

	if len(ids) == 0 {
		return []*entities.Dungeon{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = dungeonKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to get dungeons")
	}

	dungeons := make([]*entities.Dungeon, 0, len(values))
	for _, val := range values {
		data, ok := val.(string)
		if !ok {
			continue
		}

		var dungeon entities.Dungeon
		if err := json.Unmarshal([]byte(data), &dungeon); err != nil {
			continue
		}
		dungeons = append(dungeons, &dungeon)
	}

	return dungeons, nil
}

func (r *redisRepository) set(ctx context.Context, dungeon *entities.Dungeon) error {
	data, err := json.Marshal(dungeon)
	if err != nil {
		return dcerr.Wrap(err, "failed to serialize dungeon")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, dungeonKeyPrefix+dungeon.ID, data, 0)
	pipe.SAdd(ctx, allDungeonsKey, dungeon.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to store dungeon")
	}

	return nil
}
