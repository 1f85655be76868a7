package ports

import (
	"context"

	"github.com/provisio/provisio/pkg/domain"
)

// ConversationEngine defines the interface for conversation cores that hold no
// per-request state of their own. This is the primary interface used by
// adapters (e.g., HTTP, MCP, CLI) so they stay decoupled from the concrete engine.
type ConversationEngine interface {
	// StartSession creates a new session and returns its welcome turn.
	StartSession(ctx context.Context) (domain.TurnResult, error)

	// Turn feeds one user message to the session and returns the reply.
	// A result with PendingExecution set expects a follow-up Turn carrying
	// domain.ExecuteMessage to run the provisioning step.
	Turn(ctx context.Context, sessionID, message string) (domain.TurnResult, error)

	// Session returns a copy of the stored session for introspection.
	Session(ctx context.Context, sessionID string) (*domain.Session, error)

	// Sessions lists the IDs of all live sessions.
	Sessions(ctx context.Context) ([]string, error)

	// DeleteSession removes the session. Returns domain.ErrSessionNotFound
	// if it does not exist.
	DeleteSession(ctx context.Context, sessionID string) error
}
