package repository

import (
	"context"
	"sync"

	"finsakhi-server/internal/models"
)

// Compile-time check
var _ SessionRepository = (*memorySessionRepository)(nil)

// memorySessionRepository keeps sessions in process memory. Used by tests and
// by the no-database development mode; state does not survive a restart.
type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemorySessionRepository creates an empty in-memory session store.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]*models.Session),
	}
}

func (r *memorySessionRepository) GetByUser(_ context.Context, userID string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[userID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	// Clone both ways so callers never share history slices with the store.
	return session.Clone(), nil
}

func (r *memorySessionRepository) Save(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.UserID] = session.Clone()
	return nil
}

func (r *memorySessionRepository) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
	return nil
}
