package storage

import (
	"context"
	"time"

	"github.com/kmuir/dirtyminds-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, code model.SessionCode) (*model.Session, error)
	DeleteSession(ctx context.Context, code model.SessionCode) error
	SessionExists(ctx context.Context, code model.SessionCode) (bool, error)
	// DeleteSessionsOlderThan removes sessions whose UpdatedAt precedes
	// cutoff and returns how many were removed. Backends with native
	// expiry may report 0.
	DeleteSessionsOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Riddle pool operations
	GetRiddlePool(ctx context.Context) ([]model.Riddle, error)
	SaveRiddlePool(ctx context.Context, riddles []model.Riddle) error
}
