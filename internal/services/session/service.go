package session

//go:generate mockgen -destination=mock/mock_service.go -package=mocksession -source=service.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/gamesessions"
	"github.com/hallowdale/dungeoncrawl/internal/uuid"
)

// Repository is an alias for the game session repository interface
type Repository = gamesessions.Repository

// Service defines the game session service interface
type Service interface {
	// StartSession opens a new active, unpaused session at the first room.
	// Any existing active session for the player is force-ended so at most
	// one session per player is ever active.
	StartSession(ctx context.Context, input *StartSessionInput) (*entities.GameSession, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, sessionID string) (*entities.GameSession, error)

	// GetActiveSession retrieves the player's single active session
	GetActiveSession(ctx context.Context, playerID string) (*entities.GameSession, error)

	// ListSessions retrieves all sessions for a player
	ListSessions(ctx context.Context, playerID string) ([]*entities.GameSession, error)

	// MoveToRoom repositions an active session. Fails with an invalid state
	// error when the session has ended.
	MoveToRoom(ctx context.Context, sessionID, roomID string, roomIndex int) (*entities.GameSession, error)

	// SaveSession checkpoints the session with the given snapshot and paused
	// flag. Saving is valid while paused as well.
	SaveSession(ctx context.Context, input *SaveSessionInput) (*entities.GameSession, error)

	// ResumeSession loads a paused session and clears the paused flag. A
	// corrupt snapshot surfaces a deserialization error so the caller can
	// start fresh instead.
	ResumeSession(ctx context.Context, sessionID string) (*entities.GameSession, error)

	// EndSession deactivates the session. Idempotent; the paused flag is
	// left as-is. An ended session cannot be resumed.
	EndSession(ctx context.Context, sessionID string) (*entities.GameSession, error)
}

// StartSessionInput contains data for opening a session
type StartSessionInput struct {
	PlayerID    string
	DungeonID   string
	FirstRoomID string
	Snapshot    *entities.Snapshot
}

// SaveSessionInput contains data for checkpointing a session
type SaveSessionInput struct {
	SessionID string
	Snapshot  *entities.Snapshot
	Paused    bool
}

// service implements the Service interface
type service struct {
	repository    Repository
	timeProvider  gamesessions.TimeProvider
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository                // Required
	TimeProvider  gamesessions.TimeProvider // Optional, will use real time if nil
	UUIDGenerator uuid.Generator            // Optional, will use default if nil
}

// NewService creates a new session service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
	}

	if cfg.TimeProvider != nil {
		svc.timeProvider = cfg.TimeProvider
	} else {
		svc.timeProvider = gamesessions.RealTimeProvider{}
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*entities.GameSession, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, dcerr.InvalidArgument("player ID is required")
	}
	if input.DungeonID == "" {
		return nil, dcerr.InvalidArgument("dungeon ID is required")
	}

	// At most one active session per player. An existing one is ended,
	// not resumed; starting a run always replaces it.
	existing, err := s.repository.GetActiveByPlayer(ctx, input.PlayerID)
	if err != nil && !dcerr.IsNotFound(err) {
		return nil, dcerr.Wrap(err, "failed to check for an active session").
			WithMeta("player_id", input.PlayerID)
	}
	if existing != nil {
		existing.End()
		if err := s.repository.Update(ctx, existing); err != nil {
			return nil, dcerr.Wrap(err, "failed to end the previous session").
				WithMeta("session_id", existing.ID)
		}
	}

	session := entities.NewGameSession(
		s.uuidGenerator.New(),
		input.PlayerID,
		input.DungeonID,
		input.FirstRoomID,
		s.timeProvider.Now(),
	)
	session.Snapshot = input.Snapshot

	if err := s.repository.Create(ctx, session); err != nil {
		return nil, dcerr.Wrap(err, "failed to create session")
	}

	return session, nil
}

func (s *service) GetSession(ctx context.Context, sessionID string) (*entities.GameSession, error) {
	if sessionID == "" {
		return nil, dcerr.InvalidArgument("session ID is required")
	}

	return s.repository.Get(ctx, sessionID)
}

func (s *service) GetActiveSession(ctx context.Context, playerID string) (*entities.GameSession, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID is required")
	}

	return s.repository.GetActiveByPlayer(ctx, playerID)
}

func (s *service) ListSessions(ctx context.Context, playerID string) ([]*entities.GameSession, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID is required")
	}

	return s.repository.ListByPlayer(ctx, playerID)
}

func (s *service) MoveToRoom(ctx context.Context, sessionID, roomID string, roomIndex int) (*entities.GameSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.MoveToRoom(roomID, roomIndex) {
		return nil, dcerr.InvalidStatef("session %s has ended and cannot move", sessionID)
	}

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist room move").
			WithMeta("session_id", sessionID)
	}

	return session, nil
}

func (s *service) SaveSession(ctx context.Context, input *SaveSessionInput) (*entities.GameSession, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}

	session, err := s.GetSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.Snapshot = input.Snapshot
	session.MarkSaved(s.timeProvider.Now(), input.Paused)

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, dcerr.Wrap(err, "failed to save session").
			WithMeta("session_id", input.SessionID)
	}

	return session, nil
}

func (s *service) ResumeSession(ctx context.Context, sessionID string) (*entities.GameSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		// A corrupt snapshot comes back as a deserialization error from
		// the repository; let it through unchanged so the caller can
		// decide to start a fresh run.
		return nil, err
	}

	if !session.IsActive {
		return nil, dcerr.InvalidStatef("session %s has ended and cannot be resumed", sessionID)
	}

	session.IsPaused = false

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, dcerr.Wrap(err, "failed to resume session").
			WithMeta("session_id", sessionID)
	}

	return session, nil
}

func (s *service) EndSession(ctx context.Context, sessionID string) (*entities.GameSession, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.End()

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, dcerr.Wrap(err, "failed to end session").
			WithMeta("session_id", sessionID)
	}

	return session, nil
}
