package steps_test

import (
	"context"
	"testing"

	"github.com/aretw0/taskflow/internal/steps"
	"github.com/aretw0/taskflow/internal/testutils"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTasks() []domain.Task {
	return []domain.Task{
		{ID: "1", Description: "Buy milk", Priority: domain.PriorityLow, Scheduled: "2026-10-20 09:00:00"},
		{ID: "2", Description: "Pay rent", Priority: domain.PriorityHigh, Scheduled: "2026-10-21 09:00:00"},
	}
}

func TestInput_Commands(t *testing.T) {
	tests := []struct {
		name       string
		tasks      []domain.Task
		script     []string
		want       domain.Action
		wantTarget *int
		wantOutput string
	}{
		{name: "Exit By Number", script: []string{"5"}, want: steps.ActionExit, wantOutput: "Goodbye!"},
		{name: "Exit By Word", script: []string{"EXIT"}, want: steps.ActionExit},
		{name: "End Of Input", script: nil, want: steps.ActionExit},
		{name: "View", script: []string{"4"}, want: steps.ActionView},
		{name: "Unknown Choice", script: []string{"9"}, want: steps.ActionInvalidCmd, wantOutput: "Invalid choice"},
		{name: "Create Back", script: []string{"1", "b"}, want: steps.ActionBack},
		{name: "Create EOF Midway", script: []string{"1", "Buy milk"}, want: steps.ActionExit},
		{name: "Done Empty List", script: []string{"2"}, want: steps.ActionBack, wantOutput: "no tasks to mark as done"},
		{name: "Delete Empty List", script: []string{"3"}, want: steps.ActionBack, wantOutput: "no tasks to delete"},
		{name: "Done Back", tasks: twoTasks(), script: []string{"2", "back"}, want: steps.ActionBack},
		{name: "Done Valid", tasks: twoTasks(), script: []string{"2", "2"}, want: steps.ActionDone, wantTarget: intPtr(1)},
		{name: "Delete Valid", tasks: twoTasks(), script: []string{"3", "1"}, want: steps.ActionDelete, wantTarget: intPtr(0)},
		{name: "Index Not A Number", tasks: twoTasks(), script: []string{"2", "two"}, want: steps.ActionInvalidCmd, wantOutput: "Please enter a number"},
		{name: "Index Empty", tasks: twoTasks(), script: []string{"3", ""}, want: steps.ActionInvalidCmd},
		{name: "Index Zero", tasks: twoTasks(), script: []string{"2", "0"}, want: steps.ActionInvalidCmd, wantOutput: "out of range"},
		{name: "Index Too Large", tasks: twoTasks(), script: []string{"3", "3"}, want: steps.ActionInvalidCmd, wantOutput: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			con := testutils.NewConsole(tt.script...)
			state := domain.NewState(tt.tasks)
			state.Turn.Draft = &domain.Draft{Description: "stale"}

			action := (&steps.Input{Console: con}).Node().Activate(context.Background(), state)

			assert.Equal(t, tt.want, action)
			assert.Nil(t, state.Turn.Draft, "turn must be cleared every cycle")
			assert.Equal(t, tt.wantTarget, state.Turn.Target)
			assert.Equal(t, len(tt.tasks), len(state.Tasks), "input never mutates the list")
			if tt.wantOutput != "" {
				assert.Contains(t, con.Output(), tt.wantOutput)
			}
		})
	}
}

func TestInput_CreateSetsDraft(t *testing.T) {
	con := testutils.NewConsole("1", "  Write quarterly report ", "high priority", "tomorrow at 5pm")
	state := domain.NewState(nil)

	action := (&steps.Input{Console: con}).Node().Activate(context.Background(), state)

	require.Equal(t, steps.ActionCreate, action)
	require.NotNil(t, state.Turn.Draft)
	assert.Equal(t, domain.Draft{
		Description:  "Write quarterly report",
		PriorityHint: "high priority",
		DeadlineHint: "tomorrow at 5pm",
	}, *state.Turn.Draft)
	assert.Nil(t, state.Turn.Target)
}

func TestInput_ListsTasksBeforeAskingIndex(t *testing.T) {
	con := testutils.NewConsole("2", "1")
	(&steps.Input{Console: con}).Node().Activate(context.Background(), domain.NewState(twoTasks()))

	assert.Contains(t, con.Output(), "  1. Buy milk\n  2. Pay rent\n")
}

func TestInput_CancelledContextExits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	con := testutils.NewConsole("1")
	action := (&steps.Input{Console: con}).Node().Activate(ctx, domain.NewState(nil))

	assert.Equal(t, steps.ActionExit, action)
	assert.Equal(t, 1, con.Remaining())
}

func TestCommand_Action(t *testing.T) {
	assert.Equal(t, steps.ActionInvalidCmd, steps.Command{}.Action())
	assert.Equal(t, steps.ActionBack, steps.Command{Kind: steps.CommandBack}.Action())
}

func intPtr(i int) *int { return &i }
