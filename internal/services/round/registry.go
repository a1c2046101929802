package round

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kmuir/dirtyminds-go/internal/broadcast"
	"github.com/kmuir/dirtyminds-go/internal/dependencies/clock"
	"github.com/kmuir/dirtyminds-go/internal/dependencies/random"
	"github.com/kmuir/dirtyminds-go/internal/model"
	"github.com/kmuir/dirtyminds-go/internal/storage"
)

const (
	// SessionCodeLength is the length of generated session codes
	SessionCodeLength = 6
	// SessionCodeAlphabet is the characters used in session codes
	// (avoids easily-confused glyphs)
	SessionCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// DefaultSessionMaxAge is how long an untouched session survives
	// before the lazy sweep on creation evicts it
	DefaultSessionMaxAge = 24 * time.Hour
)

// Registry creates sessions and routes commands to their actors
type Registry struct {
	storage     storage.Storage
	coordinator *Coordinator
	gateway     broadcast.Gateway
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger

	mu     sync.Mutex
	actors map[model.SessionCode]*Actor
}

// NewRegistry creates a new session Registry
func NewRegistry(
	storage storage.Storage,
	coordinator *Coordinator,
	gateway broadcast.Gateway,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		storage:     storage,
		coordinator: coordinator,
		gateway:     gateway,
		clock:       clock,
		random:      random,
		logger:      logger.With(slog.String("component", "registry")),
		actors:      make(map[model.SessionCode]*Actor),
	}
}

// CreateSession mints a new session with a unique join code and spawns
// its actor. The returned session carries the host key. Each creation
// also lazily sweeps sessions untouched for longer than
// DefaultSessionMaxAge.
func (r *Registry) CreateSession(ctx context.Context) (*model.Session, error) {
	if _, err := r.Sweep(ctx, DefaultSessionMaxAge); err != nil {
		r.logger.Warn("stale session sweep failed", slog.Any("error", err))
	}

	now := r.clock.Now()

	var code model.SessionCode
	for {
		code = model.SessionCode(r.random.String(SessionCodeLength, SessionCodeAlphabet))
		exists, err := r.storage.SessionExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := &model.Session{
		Code:      code,
		Status:    model.SessionStatusLobby,
		HostID:    model.PlayerID(uuid.NewString()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.actors[code] = NewActor(session, r.coordinator, r.gateway, r.clock, r.logger)
	r.mu.Unlock()

	r.logger.Info("session created", slog.String("session", string(code)))

	return session.Clone(), nil
}

// Get returns the actor for a session, reviving it from storage when
// the in-memory actor is gone (e.g. after a restart).
func (r *Registry) Get(ctx context.Context, code model.SessionCode) (*Actor, error) {
	r.mu.Lock()
	if actor, ok := r.actors[code]; ok {
		r.mu.Unlock()
		return actor, nil
	}
	r.mu.Unlock()

	session, err := r.storage.GetSession(ctx, code)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if actor, ok := r.actors[code]; ok {
		return actor, nil
	}
	actor := NewActor(session, r.coordinator, r.gateway, r.clock, r.logger)
	r.actors[code] = actor
	return actor, nil
}

// Snapshot returns a copy of the session state
func (r *Registry) Snapshot(ctx context.Context, code model.SessionCode) (*model.Session, error) {
	actor, err := r.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return actor.Snapshot(ctx)
}

// Remove stops a session's actor and deletes its stored state
func (r *Registry) Remove(ctx context.Context, code model.SessionCode) error {
	r.mu.Lock()
	if actor, ok := r.actors[code]; ok {
		actor.Stop()
		delete(r.actors, code)
	}
	r.mu.Unlock()

	return r.storage.DeleteSession(ctx, code)
}

// Sweep stops actors for finished or deserted sessions and prunes
// stale stored sessions. Returns how many stored sessions were removed.
func (r *Registry) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	r.mu.Lock()
	var stale []*Actor
	for code, actor := range r.actors {
		session, err := actor.Snapshot(ctx)
		if err != nil {
			continue
		}
		if session.Status == model.SessionStatusFinished || len(session.Roster) == 0 && session.UpdatedAt.Before(r.clock.Now().Add(-maxAge)) {
			stale = append(stale, actor)
			delete(r.actors, code)
		}
	}
	r.mu.Unlock()

	for _, actor := range stale {
		actor.Stop()
	}
	if len(stale) > 0 {
		r.logger.Info("swept idle session actors", slog.Int("count", len(stale)))
	}

	return r.storage.DeleteSessionsOlderThan(ctx, r.clock.Now().Add(-maxAge))
}

// Close stops all actors
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, actor := range r.actors {
		actor.Stop()
		delete(r.actors, code)
	}
}
