package provisio

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/provisio/provisio/internal/engine"
	"github.com/provisio/provisio/pkg/adapters/memory"
	"github.com/provisio/provisio/pkg/adapters/simulator"
	"github.com/provisio/provisio/pkg/domain"
	"github.com/provisio/provisio/pkg/flow"
	"github.com/provisio/provisio/pkg/ports"
	"github.com/provisio/provisio/pkg/pricing"
	"github.com/provisio/provisio/pkg/session"
	"github.com/provisio/provisio/pkg/terraform"
)

// Version identifies the library build. Overridable at link time:
//
//	go build -ldflags "-X github.com/provisio/provisio.Version=v1.2.3"
var Version = "0.1.0-dev"

// Engine is the high-level entry point for the library. It wraps the
// conversation core and provides a simplified API for consumers that do not
// need to assemble the collaborators themselves.
type Engine struct {
	core *engine.Engine

	store               ports.SessionStore
	locker              ports.DistributedLocker
	provisioner         ports.Provisioner
	generator           ports.CodeGenerator
	estimator           ports.CostEstimator
	defaultSubscription string
	hooks               domain.LifecycleHooks
	logger              *slog.Logger
	clock               func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore injects a custom session store, replacing the default in-memory
// one. Use the redis adapter for multi-process deployments.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed per-session locking on top of the local
// mutex map. Only needed when several processes share one store.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithProvisioner swaps out the default simulator backend.
func WithProvisioner(p ports.Provisioner) Option {
	return func(e *Engine) {
		e.provisioner = p
	}
}

// WithGenerator swaps out the Terraform code generator.
func WithGenerator(g ports.CodeGenerator) Option {
	return func(e *Engine) {
		e.generator = g
	}
}

// WithEstimator swaps out the cost estimator.
func WithEstimator(est ports.CostEstimator) Option {
	return func(e *Engine) {
		e.estimator = est
	}
}

// WithDefaultSubscription sets the subscription ID that backs the literal
// "default" answer at the subscription prompt.
func WithDefaultSubscription(id string) Option {
	return func(e *Engine) {
		e.defaultSubscription = id
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = now
	}
}

// New initializes an Engine. With no options it is fully self-contained:
// sessions live in memory and creations run against the simulator.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.provisioner == nil {
		eng.provisioner = simulator.New()
	}
	if eng.generator == nil {
		eng.generator = terraform.NewGenerator()
	}
	if eng.estimator == nil {
		eng.estimator = pricing.NewEstimator()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	mgrOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		mgrOpts = append(mgrOpts, session.WithLocker(eng.locker))
	}
	if eng.clock != nil {
		mgrOpts = append(mgrOpts, session.WithClock(eng.clock))
	}

	core, err := engine.New(engine.Config{
		Manager:             session.NewManager(eng.store, mgrOpts...),
		Registry:            flow.NewRegistry(),
		Estimator:           eng.estimator,
		Generator:           eng.generator,
		Provisioner:         eng.provisioner,
		DefaultSubscription: eng.defaultSubscription,
		Logger:              eng.logger,
		Hooks:               eng.hooks,
		Clock:               eng.clock,
	})
	if err != nil {
		return nil, err
	}
	eng.core = core
	return eng, nil
}

var _ ports.ConversationEngine = (*Engine)(nil)

// StartSession creates a session and returns its welcome turn.
func (e *Engine) StartSession(ctx context.Context) (domain.TurnResult, error) {
	return e.core.StartSession(ctx)
}

// Turn applies one user message to a session. When the result reports
// PendingExecution the caller is expected to follow up with
// domain.ExecuteMessage (or use Run, which does so automatically).
func (e *Engine) Turn(ctx context.Context, sessionID, message string) (domain.TurnResult, error) {
	return e.core.Turn(ctx, sessionID, message)
}

// Run applies one user message and, if the session entered the creating
// state, immediately dispatches the execute follow-up. It returns every
// turn produced, in order; callers that want a dialogue without managing
// the execute sentinel should use Run instead of Turn.
func (e *Engine) Run(ctx context.Context, sessionID, message string) ([]domain.TurnResult, error) {
	out, err := e.core.Turn(ctx, sessionID, message)
	if err != nil {
		return nil, err
	}
	results := []domain.TurnResult{out}
	if out.PendingExecution {
		followUp, err := e.core.Turn(ctx, sessionID, domain.ExecuteMessage)
		if err != nil {
			return results, err
		}
		results = append(results, followUp)
	}
	return results, nil
}

// Session loads a session snapshot without applying a turn.
func (e *Engine) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.core.Session(ctx, sessionID)
}

// Sessions lists the IDs of all stored sessions.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.core.Sessions(ctx)
}

// DeleteSession removes a session from the store.
func (e *Engine) DeleteSession(ctx context.Context, sessionID string) error {
	return e.core.DeleteSession(ctx, sessionID)
}

// Core exposes the underlying conversation engine for adapters that accept
// the ports.ConversationEngine interface directly.
func (e *Engine) Core() ports.ConversationEngine {
	return e.core
}
