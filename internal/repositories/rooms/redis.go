package rooms

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

const (
	roomKeyPrefix   = "room:"
	dungeonRoomsKey = "dungeon:%s:rooms"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed room repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func (r *redisRepository) Create(ctx context.Context, room *entities.Room) error {
	if room == nil {
		return dcerr.InvalidArgument("room cannot be nil")
	}
	if room.ID == "" {
		return dcerr.InvalidArgument("room ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, roomKeyPrefix+room.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check room existence")
	}
	if exists > 0 {
		return dcerr.AlreadyExists(fmt.Sprintf("room with ID %s already exists", room.ID))
	}

	return r.set(ctx, room)
}

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.Room, error) {
	if id == "" {
		return nil, dcerr.InvalidArgument("room ID cannot be empty")
	}

	data, err := r.client.Get(ctx, roomKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("room not found: %s", id)
		}
		return nil, dcerr.Wrap(err, "failed to get room")
	}

	var room entities.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, dcerr.WrapWithCode(err, dcerr.CodeDeserializationFailed, "failed to deserialize room")
	}

	return &room, nil
}

func (r *redisRepository) Update(ctx context.Context, room *entities.Room) error {
	if room == nil {
		return dcerr.InvalidArgument("room cannot be nil")
	}
	if room.ID == "" {
		return dcerr.InvalidArgument("room ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, roomKeyPrefix+room.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check room existence")
	}
	if exists == 0 {
		return dcerr.NotFoundf("room not found: %s", room.ID)
	}

	return r.set(ctx, room)
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	room, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, roomKeyPrefix+id)
	pipe.SRem(ctx, fmt.Sprintf(dungeonRoomsKey, room.DungeonID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to delete room")
	}

	return nil
}

func (r *redisRepository) ListByDungeon(ctx context.Context, dungeonID string) ([]*entities.Room, error) {
	if dungeonID == "" {
		return nil, dcerr.InvalidArgument("dungeon ID cannot be empty")
	}

	ids, err := r.client.SMembers(ctx, fmt.Sprintf(dungeonRoomsKey, dungeonID)).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to list dungeon rooms")
	}

	if len(ids) == 0 {
		return []*entities.Room{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roomKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to get rooms")
	}

	rooms := make([]*entities.Room, 0, len(values))
	for _, val := range values {
		data, ok := val.(string)
		if !ok {
			continue
		}

		var room entities.Room
		if err := json.Unmarshal([]byte(data), &room); err != nil {
			continue
		}
		rooms = append(rooms, &room)
	}

	return rooms, nil
}

func (r *redisRepository) set(ctx context.Context, room *entities.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return dcerr.Wrap(err, "failed to serialize room")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, roomKeyPrefix+room.ID, data, 0)
	if room.DungeonID != "" {
		pipe.SAdd(ctx, fmt.Sprintf(dungeonRoomsKey, room.DungeonID), room.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to store room")
	}

	return nil
}
