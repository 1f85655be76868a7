// Package engine implements the conversation state machine that drives a
// provisioning dialogue from resource selection through confirmation and
// dispatch. The engine owns no I/O besides the session store behind the
// manager and the single generator/provisioner call at the end of a
// confirmed flow; everything else is pure state transition.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/provisio/provisio/internal/logging"
	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
	"github.com/provisio/provisio/pkg/interpret"
	"github.com/provisio/provisio/pkg/ports"
	"github.com/provisio/provisio/pkg/session"
)

// Config assembles the engine's collaborators. Manager, Registry, Estimator,
// Generator and Provisioner are required.
type Config struct {
	Manager     *session.Manager
	Registry    *flow.Registry
	Estimator   ports.CostEstimator
	Generator   ports.CodeGenerator
	Provisioner ports.Provisioner

	// DefaultSubscription backs the literal "default" answer at the
	// subscription prompt. Empty means "default" is re-prompted.
	DefaultSubscription string

	Logger *slog.Logger
	Hooks  domain.LifecycleHooks

	// Clock overrides the time source, for tests.
	Clock func() time.Time
}

// Engine is the conversation core. It is safe for concurrent use; the
// session manager serializes turns per session while distinct sessions
// proceed in parallel.
type Engine struct {
	mgr         *session.Manager
	flows       *flow.Registry
	estimator   ports.CostEstimator
	generator   ports.CodeGenerator
	provisioner ports.Provisioner

	defaultSubscription string
	logger              *slog.Logger
	hooks               domain.LifecycleHooks
	now                 func() time.Time
}

// New validates the configuration and builds the engine. The flow registry
// is checked up front so a malformed step definition fails at startup, not
// mid-conversation.
func New(cfg Config) (*Engine, error) {
	if cfg.Manager == nil {
		return nil, errors.New("engine: session manager is required")
	}
	if cfg.Registry == nil {
		return nil, errors.New("engine: flow registry is required")
	}
	if cfg.Estimator == nil {
		return nil, errors.New("engine: cost estimator is required")
	}
	if cfg.Generator == nil {
		return nil, errors.New("engine: code generator is required")
	}
	if cfg.Provisioner == nil {
		return nil, errors.New("engine: provisioner is required")
	}
	if err := cfg.Registry.Validate(); err != nil {
		return nil, fmt.Errorf("engine: invalid flow registry: %w", err)
	}

	e := &Engine{
		mgr:                 cfg.Manager,
		flows:               cfg.Registry,
		estimator:           cfg.Estimator,
		generator:           cfg.Generator,
		provisioner:         cfg.Provisioner,
		defaultSubscription: cfg.DefaultSubscription,
		logger:              cfg.Logger,
		hooks:               cfg.Hooks,
		now:                 cfg.Clock,
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e, nil
}

var _ ports.ConversationEngine = (*Engine)(nil)

// StartSession creates a session and runs its welcome turn. The empty
// message that produces the welcome prompt is a protocol artifact, not user
// input; it is logged at debug as the welcome turn.
func (e *Engine) StartSession(ctx context.Context) (domain.TurnResult, error) {
	sess, err := e.mgr.Create(ctx)
	if err != nil {
		return domain.TurnResult{}, err
	}
	if e.hooks.OnSessionStart != nil {
		e.hooks.OnSessionStart(ctx, sess.ID)
	}
	e.logger.Debug("session started", "session_id", sess.ID)
	return e.Turn(ctx, sess.ID, "")
}

// Turn feeds one message to the session and returns the structured result.
// The session mutation and the result are committed atomically: a handler
// error leaves the stored session untouched.
func (e *Engine) Turn(ctx context.Context, sessionID, message string) (domain.TurnResult, error) {
	start := e.now()

	var (
		out  domain.TurnResult
		from domain.State
	)
	_, err := e.mgr.Update(ctx, sessionID, func(sess *domain.Session) error {
		from = sess.State
		res, err := e.handle(ctx, sess, message)
		if err != nil {
			return err
		}
		res.SessionID = sess.ID
		res.State = sess.State
		out = res
		return nil
	})
	if err != nil {
		return domain.TurnResult{}, err
	}

	if from == domain.StateInitial {
		e.logger.Debug("turn", "session_id", sessionID, "kind", "welcome", "to", out.State)
	} else {
		e.logger.Debug("turn", "session_id", sessionID, "from", from, "to", out.State,
			"rejected", out.State == from && len(message) > 0)
	}
	if e.hooks.OnTurn != nil {
		e.hooks.OnTurn(ctx, &domain.TurnEvent{
			SessionID: sessionID,
			From:      from,
			To:        out.State,
			Rejected:  out.State == from && from != domain.StateCompleted,
			Duration:  e.now().Sub(start),
		})
	}
	return out, nil
}

// Session returns a copy of the stored session.
func (e *Engine) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.mgr.Load(ctx, sessionID)
}

// Sessions lists all live session IDs.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.mgr.List(ctx)
}

// DeleteSession removes the session, returning domain.ErrSessionNotFound
// for unknown IDs.
func (e *Engine) DeleteSession(ctx context.Context, sessionID string) error {
	if err := e.mgr.Delete(ctx, sessionID); err != nil {
		return err
	}
	if e.hooks.OnSessionEnd != nil {
		e.hooks.OnSessionEnd(ctx, sessionID)
	}
	e.logger.Debug("session deleted", "session_id", sessionID)
	return nil
}

// handle runs one turn against the in-memory session. It mutates sess and
// returns the result; the caller persists both together.
func (e *Engine) handle(ctx context.Context, sess *domain.Session, message string) (domain.TurnResult, error) {
	in := interpret.Parse(message, sess.State)

	// The restart family short-circuits from any state.
	if in.Kind == interpret.KindRestart {
		return e.restart(sess), nil
	}

	switch sess.State {
	case domain.StateInitial:
		return e.welcome(sess), nil
	case domain.StateResourceSelection:
		return e.selectResource(sess, in), nil
	case domain.StateSubscription:
		return e.collectSubscription(sess, in), nil
	case domain.StateResourceGroup:
		return e.collectResourceGroup(sess, in), nil
	case domain.StateRegion:
		return e.collectRegion(sess, in), nil
	case domain.StateResourceConfig:
		return e.collectConfig(sess, in), nil
	case domain.StateConfirmation:
		return e.confirm(sess, in)
	case domain.StateCreating:
		return e.dispatch(ctx, sess)
	case domain.StateCompleted:
		return domain.TurnResult{
			Message: "Resource creation complete! Type 'restart' to create another resource.",
		}, nil
	}
	return domain.TurnResult{
		Message: "I'm not sure how to proceed. Type 'restart' to begin again.",
	}, nil
}
