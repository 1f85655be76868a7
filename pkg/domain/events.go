package domain

import (
	"context"
	"time"
)

// TurnEvent describes one processed conversation turn.
type TurnEvent struct {
	SessionID string        `json:"session_id"`
	From      State         `json:"from"`
	To        State         `json:"to"`
	Rejected  bool          `json:"rejected,omitempty"` // input did not advance the state
	Duration  time.Duration `json:"duration"`
}

// ProvisionEvent describes one provisioner dispatch.
type ProvisionEvent struct {
	SessionID string        `json:"session_id"`
	Resource  ResourceType  `json:"resource"`
	Success   bool          `json:"success"`
	Duration  time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability. All fields are
// optional; the engine invokes only the non-nil ones, synchronously, after
// the session state has been committed.
type LifecycleHooks struct {
	OnSessionStart func(ctx context.Context, sessionID string)
	OnSessionEnd   func(ctx context.Context, sessionID string)
	OnTurn         func(ctx context.Context, ev *TurnEvent)
	OnProvision    func(ctx context.Context, ev *ProvisionEvent)
}
