package domain

// Draft is the pending task collected by the input node on a create command.
// Priority stays empty until the categorize node resolves it.
type Draft struct {
	Description  string
	PriorityHint string
	DeadlineHint string
	Priority     Priority
}

// Turn holds the transient fields of one menu cycle.
// The input node clears it at the start of every cycle, so a field is only
// meaningful to the nodes that run between the write and the next menu.
type Turn struct {
	// Draft is set on create.
	Draft *Draft
	// Target is the zero-based index chosen on done/delete.
	Target *int
}

// State is the shared context of one engine run.
type State struct {
	// Tasks is the authoritative, insertion-ordered task list.
	Tasks []Task

	// Turn holds transient per-cycle data.
	Turn Turn
}

// NewState creates a clean state holding tasks.
func NewState(tasks []Task) *State {
	if tasks == nil {
		tasks = []Task{}
	}
	return &State{Tasks: tasks}
}

// ResetTurn clears every transient field.
func (s *State) ResetTurn() {
	s.Turn = Turn{}
}

// Snapshot returns a copy of the task list that shares no backing array with the state.
func (s *State) Snapshot() []Task {
	out := make([]Task, len(s.Tasks))
	copy(out, s.Tasks)
	return out
}
