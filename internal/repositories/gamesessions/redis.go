package gamesessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

const (
	sessionKeyPrefix  = "game_session:"
	playerSessionsKey = "player:%s:game_sessions"
)

// Data is the wire shape of a persisted game session. The snapshot is
// serialized here and nowhere else.
type Data struct {
	ID               string             `json:"id"`
	PlayerID         string             `json:"player_id"`
	DungeonID        string             `json:"dungeon_id"`
	CurrentRoomID    string             `json:"current_room_id"`
	CurrentRoomIndex int                `json:"current_room_index"`
	IsActive         bool               `json:"is_active"`
	IsPaused         bool               `json:"is_paused"`
	StartTime        time.Time          `json:"start_time"`
	LastSaved        time.Time          `json:"last_saved"`
	Snapshot         *entities.Snapshot `json:"snapshot,omitempty"`
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
}

type redisRepository struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// NewRedisRepository creates a new Redis-backed game session repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}
	if cfg.TimeProvider == nil {
		panic("time provider is required")
	}

	return &redisRepository{
		client:       cfg.Client,
		timeProvider: cfg.TimeProvider,
	}
}

func (r *redisRepository) Create(ctx context.Context, session *entities.GameSession) error {
	if session == nil {
		return dcerr.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return dcerr.InvalidArgument("session ID cannot be empty")
	}

	session.LastSaved = r.timeProvider.Now()

	return r.set(ctx, session)
}

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.GameSession, error) {
	if id == "" {
		return nil, dcerr.InvalidArgument("session ID cannot be empty")
	}

	jsonData, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dcerr.NotFoundf("session not found: %s", id)
		}
		return nil, dcerr.Wrap(err, "failed to get session")
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, dcerr.WrapWithCode(err, dcerr.CodeDeserializationFailed, "failed to deserialize session")
	}

	return toSession(&data), nil
}

func (r *redisRepository) Update(ctx context.Context, session *entities.GameSession) error {
	if session == nil {
		return dcerr.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return dcerr.InvalidArgument("session ID cannot be empty")
	}

	session.LastSaved = r.timeProvider.Now()

	return r.set(ctx, session)
}

func (r *redisRepository) Delete(ctx context.Context, id string) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, sessionKeyPrefix+id)
	pipe.SRem(ctx, fmt.Sprintf(playerSessionsKey, session.PlayerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to delete session")
	}

	return nil
}

func (r *redisRepository) ListByPlayer(ctx context.Context, playerID string) ([]*entities.GameSession, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID cannot be empty")
	}

	sessionIDs, err := r.client.SMembers(ctx, fmt.Sprintf(playerSessionsKey, playerID)).Result()
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to get player sessions")
	}

	sessions := make([]*entities.GameSession, len(sessionIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range sessionIDs {
		i, id := i, id
		g.Go(func() error {
			session, err := r.Get(ctx, id)
			if err != nil {
				return dcerr.Wrapf(err, "failed to get session %s", id)
			}
			sessions[i] = session
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *redisRepository) GetActiveByPlayer(ctx context.Context, playerID string) (*entities.GameSession, error) {
	sessions, err := r.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		if session.IsActive {
			return session, nil
		}
	}

	return nil, dcerr.NotFoundf("no active session for player: %s", playerID)
}

func (r *redisRepository) set(ctx context.Context, session *entities.GameSession) error {
	jsonData, err := json.Marshal(toSessionData(session))
	if err != nil {
		return dcerr.Wrap(err, "failed to serialize session")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.ID, string(jsonData), 0)
	pipe.SAdd(ctx, fmt.Sprintf(playerSessionsKey, session.PlayerID), session.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dcerr.Wrap(err, "failed to store session")
	}

	return nil
}

func toSessionData(session *entities.GameSession) *Data {
	if session == nil {
		return nil
	}

	return &Data{
		ID:               session.ID,
		PlayerID:         session.PlayerID,
		DungeonID:        session.DungeonID,
		CurrentRoomID:    session.CurrentRoomID,
		CurrentRoomIndex: session.CurrentRoomIndex,
		IsActive:         session.IsActive,
		IsPaused:         session.IsPaused,
		StartTime:        session.StartTime,
		LastSaved:        session.LastSaved,
		Snapshot:         session.Snapshot,
	}
}

func toSession(data *Data) *entities.GameSession {
	if data == nil {
		return nil
	}

	return &entities.GameSession{
		ID:               data.ID,
		PlayerID:         data.PlayerID,
		DungeonID:        data.DungeonID,
		CurrentRoomID:    data.CurrentRoomID,
		CurrentRoomIndex: data.CurrentRoomIndex,
		IsActive:         data.IsActive,
		IsPaused:         data.IsPaused,
		StartTime:        data.StartTime,
		LastSaved:        data.LastSaved,
		Snapshot:         data.Snapshot,
	}
}
