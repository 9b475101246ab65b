package steps

import (
	"context"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// RemoveInput is the target index and the list it points into.
type RemoveInput struct {
	Target *int
	Tasks  []domain.Task
}

// RemoveResult is the list without the target, or Found=false.
type RemoveResult struct {
	Tasks   []domain.Task
	Removed domain.Task
	Found   bool
}

// Remove drops the targeted record from the list. Mark-done and delete are
// both removals and only differ in id and wording.
type Remove struct {
	ID      string
	Console console.Console
	// Message formats the confirmation for the removed description.
	Message string
}

// NewUpdate returns the mark-done node step.
func NewUpdate(c console.Console) *Remove {
	return &Remove{ID: NodeUpdate, Console: c, Message: "\n✅ Marked '%s' as done!"}
}

// NewDelete returns the delete node step.
func NewDelete(c console.Console) *Remove {
	return &Remove{ID: NodeDelete, Console: c, Message: "\n🗑️ Deleted '%s' from the board."}
}

func (s *Remove) Node() ports.Node[domain.State] {
	return dsl.Wrap[domain.State, RemoveInput, RemoveResult](s.ID, s)
}

func (s *Remove) Prepare(state domain.State) RemoveInput {
	return RemoveInput{Target: state.Turn.Target, Tasks: state.Tasks}
}

func (s *Remove) Execute(ctx context.Context, in RemoveInput) RemoveResult {
	res := RemoveAt(in.Tasks, in.Target)
	switch {
	case res.Found:
		s.Console.Say(s.Message, res.Removed.Description)
	case in.Target == nil:
		s.Console.Say("\n⚠️ Task number unknown not found.")
	default:
		s.Console.Say("\n⚠️ Task number %d not found.", *in.Target+1)
	}
	return res
}

func (s *Remove) Finalize(state *domain.State, in RemoveInput, res RemoveResult) domain.Action {
	if res.Found {
		state.Tasks = res.Tasks
	}
	return domain.ActionDefault
}

// RemoveAt returns a new list without tasks[*idx]. The input is not modified.
func RemoveAt(tasks []domain.Task, idx *int) RemoveResult {
	if idx == nil || *idx < 0 || *idx >= len(tasks) {
		return RemoveResult{Tasks: tasks}
	}
	i := *idx
	out := make([]domain.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	out = append(out, tasks[i+1:]...)
	return RemoveResult{Tasks: out, Removed: tasks[i], Found: true}
}
