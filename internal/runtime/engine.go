package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/taskflow/internal/logging"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// EngineOption configures the Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	now    func() time.Time
}

// WithLogger sets the structured logger used for transition tracing.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(c *engineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(c *engineConfig) {
		c.hooks = hooks
	}
}

// WithClock overrides the time source used for event timestamps and durations.
func WithClock(now func() time.Time) EngineOption {
	return func(c *engineConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// Engine is the core state machine runner.
// It activates one node at a time over a shared state S and follows the
// action-keyed transition tables of its graph.
type Engine[S any] struct {
	graph *dsl.Graph[S]
	cfg   engineConfig
}

// NewEngine creates a new engine for a compiled graph.
func NewEngine[S any](graph *dsl.Graph[S], opts ...EngineOption) *Engine[S] {
	cfg := engineConfig{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine[S]{graph: graph, cfg: cfg}
}

// Graph returns the graph driven by the engine.
func (e *Engine[S]) Graph() *dsl.Graph[S] {
	return e.graph
}

// Run executes the graph from its entry node until a terminal action.
func (e *Engine[S]) Run(ctx context.Context, state *S) error {
	return e.RunFrom(ctx, e.graph.Entry(), state)
}

// RunFrom executes the graph from node start until a terminal action.
//
// It returns nil on a terminal action, ctx.Err() when the context is
// cancelled between activations, and a *domain.TransitionError when a node
// returns an action its transition table cannot resolve.
func (e *Engine[S]) RunFrom(ctx context.Context, start string, state *S) error {
	current, ok := e.graph.Node(start)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownNode, start)
	}

	for {
		if err := ctx.Err(); err != nil {
			e.cfg.logger.Debug("run cancelled", "node", current.ID(), "err", err)
			return err
		}

		action := e.activate(ctx, current, state)

		next, terminal, err := e.graph.Resolve(current.ID(), action)
		if err != nil {
			e.cfg.logger.Error("transition failed", "node", current.ID(), "action", action, "err", err)
			return err
		}
		if terminal {
			e.cfg.logger.Debug("run finished", "node", current.ID(), "action", action)
			return nil
		}

		e.cfg.logger.Debug("transition", "from", current.ID(), "action", action, "to", next)

		// Resolve only returns targets validated at build time.
		current, _ = e.graph.Node(next)
	}
}

func (e *Engine[S]) activate(ctx context.Context, node ports.Node[S], state *S) domain.Action {
	started := e.cfg.now()
	e.emitNodeEnter(ctx, node.ID(), started)

	action := node.Activate(ctx, state)

	e.emitNodeLeave(ctx, node.ID(), action, started)
	return action
}

func (e *Engine[S]) emitNodeEnter(ctx context.Context, nodeID string, at time.Time) {
	if e.cfg.hooks.OnNodeEnter == nil {
		return
	}
	e.cfg.hooks.OnNodeEnter(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: at, Type: domain.EventNodeEnter},
		NodeID:    nodeID,
	})
}

func (e *Engine[S]) emitNodeLeave(ctx context.Context, nodeID string, action domain.Action, started time.Time) {
	if e.cfg.hooks.OnNodeLeave == nil {
		return
	}
	now := e.cfg.now()
	e.cfg.hooks.OnNodeLeave(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: now, Type: domain.EventNodeLeave},
		NodeID:    nodeID,
		Action:    action,
		Duration:  now.Sub(started),
	})
}
