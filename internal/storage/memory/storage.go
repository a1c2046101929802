package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	sessions   map[model.SessionCode]*model.Session
	riddlePool []model.Riddle
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		sessions: make(map[model.SessionCode]*model.Session),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Code] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[code]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, code model.SessionCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, code model.SessionCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[code]
	return ok, nil
}

func (s *Storage) DeleteSessionsOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for code, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, code)
			removed++
		}
	}
	return removed, nil
}

// Riddle pool operations

func (s *Storage) GetRiddlePool(ctx context.Context) ([]model.Riddle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.riddlePool == nil {
		return nil, model.ErrRiddlePoolNotLoaded
	}
	result := make([]model.Riddle, len(s.riddlePool))
	copy(result, s.riddlePool)
	return result, nil
}

func (s *Storage) SaveRiddlePool(ctx context.Context, riddles []model.Riddle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.riddlePool = make([]model.Riddle, len(riddles))
	copy(s.riddlePool, riddles)
	return nil
}
