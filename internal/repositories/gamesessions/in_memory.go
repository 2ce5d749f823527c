package gamesessions

import (
	"context"
	"sync"

	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu           sync.RWMutex
	sessions     map[string]*entities.GameSession
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory game session repository
func NewInMemoryRepository(timeProvider TimeProvider) Repository {
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}

	return &inMemoryRepository{
		sessions:     make(map[string]*entities.GameSession),
		timeProvider: timeProvider,
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, session *entities.GameSession) error {
	if session == nil {
		return dcerr.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return dcerr.InvalidArgument("session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return dcerr.AlreadyExists("session with ID " + session.ID + " already exists")
	}

	session.LastSaved = r.timeProvider.Now()
	r.sessions[session.ID] = copySession(session)

	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*entities.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, dcerr.NotFoundf("session not found: %s", id)
	}

	return copySession(session), nil
}

func (r *inMemoryRepository) Update(ctx context.Context, session *entities.GameSession) error {
	if session == nil {
		return dcerr.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return dcerr.InvalidArgument("session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; !exists {
		return dcerr.NotFoundf("session not found: %s", session.ID)
	}

	session.LastSaved = r.timeProvider.Now()
	r.sessions[session.ID] = copySession(session)

	return nil
}

func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return dcerr.NotFoundf("session not found: %s", id)
	}

	delete(r.sessions, id)
	return nil
}

func (r *inMemoryRepository) ListByPlayer(ctx context.Context, playerID string) ([]*entities.GameSession, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*entities.GameSession, 0)
	for _, session := range r.sessions {
		if session.PlayerID == playerID {
			sessions = append(sessions, copySession(session))
		}
	}

	return sessions, nil
}

func (r *inMemoryRepository) GetActiveByPlayer(ctx context.Context, playerID string) (*entities.GameSession, error) {
	if playerID == "" {
		return nil, dcerr.InvalidArgument("player ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, session := range r.sessions {
		if session.PlayerID == playerID && session.IsActive {
			return copySession(session), nil
		}
	}

	return nil, dcerr.NotFoundf("no active session for player: %s", playerID)
}

// copySession returns a copy safe from external modification, snapshot
// included.
func copySession(session *entities.GameSession) *entities.GameSession {
	sessionCopy := *session
	if session.Snapshot != nil {
		snapshotCopy := *session.Snapshot
		sessionCopy.Snapshot = &snapshotCopy
	}
	return &sessionCopy
}
