package ports

import (
	"context"

	"github.com/provisio/provisio/pkg/domain"
)

// SessionStore defines the interface for persisting conversation sessions.
// This allows for durable conversations, enabling "Stop & Resume" across
// process restarts and replicas.
type SessionStore interface {
	// Save persists the session keyed by its ID, overwriting any previous value.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}
