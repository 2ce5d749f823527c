package artifacts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

const (
	artifactKeyPrefix  = "artifact:"
	allArtifactsKey    = "artifacts"
	rarityArtifactsKey = "artifacts:rarity:%s"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed artifact repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func (r *redisRepository) Create(ctx context.Context, artifact *entities.Artifact) error {
	if artifact == nil {
		return dcerr.InvalidArgument("artifact cannot be nil")
	}
	if artifact.ID == "" {
		return dcerr.InvalidArgument("artifact ID cannot be empty")
	}

	exists, err := r.client.Exists(ctx, artifactKeyPrefix+artifact.ID).Result()
	if err != nil {
		return dcerr.Wrap(err, "failed to check artifact existence")
	}
	if exists > 0 {
		return dcerr.AlreadyExists(fmt.Sprintf("artifact with ID %s already exists", artifact.ID))
	}

	return r.set(ctx, artifact)
}

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.Artifact, error) {
	if id == "" {
		return nil, dcerr.InvalidArgument("artifact ID cannot be empty")
	}

	data, err := r.client.Get(ctx, artifactKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("artifact not found: %s", id)
		}
		return nil, dcerr.Wrap(err, "failed to get artifact")
	}

	var artifact entities.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, dcerr.WrapWithCode(err, dcerr.CodeDeserializationFailed, "failed to deserialize artifact")
	}

	return &artifact, nil
}

func (r *redisRepository) Update(ctx context.Context, artifact *entities.Artifact) error {
	if artifact == nil {
		return dcerr.InvalidArgument("artifact cannot be nil")
	}
	if artifact.ID == "" {
		return dcerr.InvalidArgument("artifact ID cannot be empty")
	}

	existing, err := r.Get(ctx, artifact.ID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	if existing.Rarity != artifact.Rarity {
		pipe.SRem(ctx, fmt.Sprintf(rarityArtifactsKey, existing.Rarity), artifact.ID)
	}
	if err := r.setInPipe(ctx, pipe, artifact); err != nil {
		return err
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to update artifact")
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	artifact, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, artifactKeyPrefix+id)
	pipe.SRem(ctx, allArtifactsKey, id)
	pipe.SRem(ctx, fmt.Sprintf(rarityArtifactsKey, artifact.Rarity), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to delete artifact")
	}

	return nil
}

func (r *redisRepository) List(ctx context.Context) ([]*entities.Artifact, error) {
	ids, err := r.client.SMembers(ctx, allArtifactsKey).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to list artifacts")
	}

	return r.getMultiple(ctx, ids)
}

func (r *redisRepository) ListByRarity(ctx context.Context, rarity entities.Rarity) ([]*entities.Artifact, error) {
	if !rarity.IsValid() {
		return nil, dcerr.InvalidArgumentf("invalid rarity: %s", rarity)
	}

	ids, err := r.client.SMembers(ctx, fmt.Sprintf(rarityArtifactsKey, rarity)).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to list artifacts by rarity")
	}

	return r.getMultiple(ctx, ids)
}

func (r *redisRepository) getMultiple(ctx context.Context, ids []string) ([]*entities.Artifact, error) {
	if len(ids) == 0 {
		return []*entities.Artifact{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = artifactKeyPrefix + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to get artifacts")
	}

	artifacts := make([]*entities.Artifact, 0, len(values))
	for _, val := range values {
		data, ok := val.(string)
		if !ok {
			continue
		}

		var artifact entities.Artifact
		if err := json.Unmarshal([]byte(data), &artifact); err != nil {
			continue
		}
		artifacts = append(artifacts, &artifact)
	}

	return artifacts, nil
}

func (r *redisRepository) set(ctx context.Context, artifact *entities.Artifact) error {
	pipe := r.client.TxPipeline()
	if err := r.setInPipe(ctx, pipe, artifact); err != nil {
		return err
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to store artifact")
	}

	return nil
}

func (r *redisRepository) setInPipe(ctx context.Context, pipe redis.Pipeliner, artifact *entities.Artifact) error {
	data, err := json.Marshal(artifact)
	if err != nil {
		return dcerr.Wrap(err, "failed to serialize artifact")
	}

	pipe.Set(ctx, artifactKeyPrefix+artifact.ID, data, 0)
	pipe.SAdd(ctx, allArtifactsKey, artifact.ID)
	pipe.SAdd(ctx, fmt.Sprintf(rarityArtifactsKey, artifact.Rarity), artifact.ID)
	return nil
}
