package monsters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

const (
	monsterKeyPrefix = "monster:"
	allMonstersKey   = "monsters"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed monster repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func (r *redisRepository) Create(ctx context.Context, monster *entities.Monster) error {
	if monster == nil {
		return dcerr.InvalidArgument("monster cannot be nil")
	}
	if monster.ID == "" {
		return dcerr.InvalidArgument("monster ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, monsterKeyPrefix+monster.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check monster existence")
	}
	if exists > 0 {
		return dcerr.AlreadyExists(fmt.Sprintf("monster with ID %s already exists", monster.ID))
	}

	return r.set(ctx, monster)
}

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.Monster, error) {
	if id == "" {
		return nil, dcerr.InvalidArgument("monster ID cannot be empty")
	}

	data, err := r.client.Get(ctx, monsterKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("monster not found: %s", id)
		}
		return nil, dcerr.Wrap(err, "failed to get monster")
	}

	var monster entities.Monster
	if err := json.Unmarshal(data, &monster); err != nil {
		return nil, dcerr.WrapWithCode(err, dcerr.CodeDeserializationFailed, "failed to deserialize monster")
	}

	return &monster, nil
}

func (r *redisRepository) Update(ctx context.Context, monster *entities.Monster) error {
	if monster == nil {
		return dcerr.InvalidArgument("monster cannot be nil")
	}
	if monster.ID == "" {
		return dcerr.InvalidArgument("monster ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, monsterKeyPrefix+monster.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check monster existence")
	}
	if exists == 0 {
		return dcerr.NotFoundf("monster not found: %s", monster.ID)
	}

	return r.set(ctx, monster)
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dcerr.InvalidArgument("monster ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, monsterKeyPrefix+id)
	pipe.SRem(ctx, allMonstersKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to delete monster")
	}

	return nil
}

func (r *redisRepository) List(ctx context.Context) ([]*entities.Monster, error) {
	ids, err := r.client.SMembers(ctx, allMonstersKey).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to list monsters")
	}

	if len(ids) == 0 {
		return []*entities.Monster{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = monsterKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to get monsters")
	}

	monsters := make([]*entities.Monster, 0, len(values))
	for _, val := range values {
		data, ok := val.(string)
		if !ok {
			continue
		}

		var monster entities.Monster
		if err := json.Unmarshal([]byte(data), &monster); err != nil {
			continue
		}
		monsters = append(monsters, &monster)
	}

	return monsters, nil
}

func (r *redisRepository) ListByLevelRange(ctx context.Context, minLevel, maxLevel int) ([]*entities.Monster, error) {
	if minLevel > maxLevel {
		return nil, dcerr.InvalidArgumentf("invalid level range [%d, %d]", minLevel, maxLevel)
	}

	monsters, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entities.Monster, 0, len(monsters))
	for _, monster := range monsters {
		if monster.Level >= minLevel && monster.Level <= maxLevel {
			filtered = append(filtered, monster)
		}
	}

	return filtered, nil
}

func (r *redisRepository) set(ctx context.Context, monster *entities.Monster) error {
	data, err := json.Marshal(monster)
	if err != nil {
		return dcerr.Wrap(err, "failed to serialize monster")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, monsterKeyPrefix+monster.ID, data, 0)
	pipe.SAdd(ctx, allMonstersKey, monster.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to store monster")
	}

	return nil
}
