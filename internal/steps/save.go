package steps

import (
	"context"
	"log/slog"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// SaveResult is the outcome of a whole-list write.
type SaveResult struct {
	Count int
	Err   error
}

// Save writes the task list to the store. Failures are reported and the run
// continues with the in-memory list.
type Save struct {
	Store   ports.TaskStore
	Console console.Console
	Logger  *slog.Logger
}

func (s *Save) Node() ports.Node[domain.State] {
	return dsl.Wrap[domain.State, []domain.Task, SaveResult](NodeSave, s)
}

func (s *Save) Prepare(state domain.State) []domain.Task {
	return state.Snapshot()
}

func (s *Save) Execute(ctx context.Context, tasks []domain.Task) SaveResult {
	return SaveResult{Count: len(tasks), Err: s.Store.Save(ctx, tasks)}
}

func (s *Save) Finalize(state *domain.State, tasks []domain.Task, res SaveResult) domain.Action {
	if res.Err != nil {
		s.Console.Say("⚠️ Error saving tasks: %v", res.Err)
		orNop(s.Logger).Error("failed to persist tasks", "tasks", res.Count, "err", res.Err)
	}
	return domain.ActionDefault
}
