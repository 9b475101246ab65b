package taskflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/taskflow/internal/logging"
	"github.com/aretw0/taskflow/internal/presentation/graph"
	"github.com/aretw0/taskflow/internal/runtime"
	"github.com/aretw0/taskflow/internal/steps"
	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
	"github.com/aretw0/taskflow/pkg/session"
)

// Assistant is the high-level entry point: the task graph bound to a store.
type Assistant struct {
	deps    Dependencies
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	session *session.Manager
	graph   *dsl.Graph[domain.State]
	engine  *runtime.Engine[domain.State]
}

// New builds an assistant persisting to store.
func New(store ports.TaskStore, opts ...Option) (*Assistant, error) {
	if store == nil {
		return nil, errors.New("taskflow: a task store is required")
	}

	a := &Assistant{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	if a.deps.Console == nil {
		a.deps.Console = console.NewText(nil, nil)
	}

	a.session = session.NewManager(store, session.WithLogger(a.logger))
	a.deps.Store = a.session
	a.deps.Logger = a.logger

	g, err := BuildGraph(a.deps)
	if err != nil {
		return nil, fmt.Errorf("taskflow: invalid graph: %w", err)
	}
	a.graph = g
	a.engine = runtime.NewEngine(g,
		runtime.WithLogger(a.logger),
		runtime.WithLifecycleHooks(a.hooks),
	)
	return a, nil
}

// Run hydrates the task list and drives the menu loop until the user exits,
// ctx is cancelled or the graph hits an unresolved action.
// An exit from the menu returns nil.
func (a *Assistant) Run(ctx context.Context) error {
	state, err := a.session.Hydrate(ctx)
	if err != nil {
		return err
	}
	return a.engine.Run(ctx, state)
}

// Tasks returns the task list as last loaded or saved.
func (a *Assistant) Tasks(ctx context.Context) ([]domain.Task, error) {
	return a.session.Load(ctx)
}

// Transitions lists the edges of the task graph.
func (a *Assistant) Transitions() []domain.Transition {
	return a.graph.Transitions()
}

// Mermaid renders the task graph as a Mermaid flowchart.
func (a *Assistant) Mermaid() string {
	return graph.GenerateMermaid(graph.Diagram{
		Entry:       a.graph.Entry(),
		Nodes:       a.graph.NodeIDs(),
		Transitions: a.graph.Transitions(),
		Interactive: []string{steps.NodeInput},
	})
}
