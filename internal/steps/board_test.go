package steps_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/taskflow/internal/logging"
	"github.com/aretw0/taskflow/internal/steps"
	"github.com/aretw0/taskflow/internal/testutils"
	"github.com/aretw0/taskflow/pkg/adapters/memory"
	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveAt(t *testing.T) {
	tasks := []domain.Task{{Description: "a"}, {Description: "b"}, {Description: "c"}}

	for i := range tasks {
		res := steps.RemoveAt(tasks, intPtr(i))
		require.True(t, res.Found)
		assert.Len(t, res.Tasks, len(tasks)-1)
		assert.Equal(t, tasks[i], res.Removed)

		var rest []string
		for _, task := range res.Tasks {
			rest = append(rest, task.Description)
		}
		var want []string
		for j, task := range tasks {
			if j != i {
				want = append(want, task.Description)
			}
		}
		assert.Equal(t, want, rest, "order must be preserved")
	}
	assert.Equal(t, []string{"a", "b", "c"}, []string{tasks[0].Description, tasks[1].Description, tasks[2].Description}, "input untouched")

	for _, idx := range []*int{nil, intPtr(-1), intPtr(3)} {
		res := steps.RemoveAt(tasks, idx)
		assert.False(t, res.Found)
		assert.Equal(t, tasks, res.Tasks)
	}
}

func TestRemoveNodes(t *testing.T) {
	tests := []struct {
		name    string
		step    func(console.Console) *steps.Remove
		target  *int
		wantLen int
		wantMsg string
	}{
		{"Mark Done", steps.NewUpdate, intPtr(0), 1, "Marked 'Buy milk' as done!"},
		{"Delete", steps.NewDelete, intPtr(1), 1, "Deleted 'Pay rent' from the board."},
		{"Not Found", steps.NewDelete, intPtr(4), 2, "Task number 5 not found."},
		{"No Target", steps.NewUpdate, nil, 2, "Task number unknown not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			con := testutils.NewConsole()
			state := domain.NewState(twoTasks())
			state.Turn.Target = tt.target

			action := tt.step(con).Node().Activate(context.Background(), state)

			assert.Equal(t, domain.ActionDefault, action)
			assert.Len(t, state.Tasks, tt.wantLen)
			assert.Contains(t, con.Output(), tt.wantMsg)
		})
	}
}

func TestSave(t *testing.T) {
	t.Run("Writes Whole List", func(t *testing.T) {
		store := memory.NewStore()
		con := testutils.NewConsole()
		state := domain.NewState(twoTasks())

		action := (&steps.Save{Store: store, Console: con}).Node().Activate(context.Background(), state)

		assert.Equal(t, domain.ActionDefault, action)
		saved, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, twoTasks(), saved)
		assert.Empty(t, con.Output())
	})

	t.Run("Failure Is Reported And Run Continues", func(t *testing.T) {
		store := memory.NewStore()
		store.FailWith(errors.New("disk full"))
		con := testutils.NewConsole()
		state := domain.NewState(twoTasks())

		action := (&steps.Save{Store: store, Console: con}).Node().Activate(context.Background(), state)

		assert.Equal(t, domain.ActionDefault, action)
		assert.Contains(t, con.Output(), "Error saving tasks: disk full")
		assert.Len(t, state.Tasks, 2, "in-memory list stays authoritative")
	})
}

func TestBuildBoard(t *testing.T) {
	tasks := []domain.Task{
		{Description: "Write report", Priority: domain.PriorityHigh, Scheduled: "2026-10-20 17:00:00",
			Breakdown: []domain.MicroStep{{Step: "a", EstimatedMinutes: 45}, {Step: "b", EstimatedMinutes: 20}}},
		{Description: "Call plumber", Priority: domain.PriorityLow, Scheduled: "next blue moon",
			Breakdown: []domain.MicroStep{{Step: "Manual execution required (Error: x)", EstimatedMinutes: 0}}},
	}

	board := steps.BuildBoard(tasks)

	assert.Equal(t, []string{
		" 1. [HIGH] Write report (Scheduled: 2026-10-20 17:00:00) [~65m]",
		" 2. [LOW] Call plumber (Scheduled: next blue moon)",
	}, board.Lines)
	assert.Equal(t, 65, board.TotalMinutes)
	assert.Equal(t, "1h 5m", board.Workload())
}

func TestFormatWorkload(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{59, "59m"},
		{60, "1h 0m"},
		{125, "2h 5m"},
		{-3, "0m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, steps.FormatWorkload(tt.minutes))
	}
}

func TestSummary_Idempotent(t *testing.T) {
	con := testutils.NewConsole()
	s := &steps.Summary{Console: con}
	state := domain.NewState([]domain.Task{
		{Description: "Write report", Priority: domain.PriorityHigh, Scheduled: "x",
			Breakdown: []domain.MicroStep{{Step: "a", EstimatedMinutes: 30}}},
	})

	first := s.Execute(context.Background(), s.Prepare(*state))
	second := s.Execute(context.Background(), s.Prepare(*state))

	assert.Equal(t, first, second)
	assert.Equal(t, 30, first.TotalMinutes)
	assert.Equal(t, 2, strings.Count(con.Output(), "CURRENT TASK BOARD"))
	assert.Contains(t, con.Output(), "Total Estimated Workload:** 30m")

	action := s.Node().Activate(context.Background(), state)
	assert.Equal(t, domain.ActionDefault, action)
}

func TestSummary_EmptyBoard(t *testing.T) {
	con := testutils.NewConsole()
	(&steps.Summary{Console: con}).Node().Activate(context.Background(), domain.NewState(nil))

	assert.Contains(t, con.Output(), "No tasks yet")
	assert.Contains(t, con.Output(), "Total Estimated Workload:** 0m")
}

func TestFindAlerts(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	at := func(d time.Duration) string { return domain.FormatSchedule(now.Add(d)) }

	tasks := []domain.Task{
		{Description: "soon", Scheduled: at(1800 * time.Second)},
		{Description: "late", Scheduled: at(-10 * time.Second)},
		{Description: "literal", Scheduled: "next blue moon"},
		{Description: "far", Scheduled: at(3601 * time.Second)},
		{Description: "edge", Scheduled: at(time.Hour)},
		{Description: "now", Scheduled: at(0)},
		{Description: "odd minute", Scheduled: at(59*time.Minute + 59*time.Second)},
	}

	alerts := steps.FindAlerts(tasks, now)

	assert.Equal(t, []steps.Alert{
		{Kind: steps.AlertReminder, Task: "soon", Scheduled: at(1800 * time.Second), MinsLeft: 30},
		{Kind: steps.AlertOverdue, Task: "late", Scheduled: at(-10 * time.Second)},
		{Kind: steps.AlertReminder, Task: "edge", Scheduled: at(time.Hour), MinsLeft: 60},
		{Kind: steps.AlertReminder, Task: "now", Scheduled: at(0), MinsLeft: 0},
		{Kind: steps.AlertReminder, Task: "odd minute", Scheduled: at(59*time.Minute + 59*time.Second), MinsLeft: 59},
	}, alerts)
}

func TestCheckDeadlines_Output(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	t.Run("Framed Alerts", func(t *testing.T) {
		con := testutils.NewConsole()
		state := domain.NewState([]domain.Task{
			{Description: "Pay rent", Scheduled: domain.FormatSchedule(now.Add(30 * time.Minute))},
			{Description: "Buy milk", Scheduled: "2026-10-19 09:00:00"},
		})

		action := (&steps.CheckDeadlines{Console: con, Now: testutils.FixedClock(now)}).Node().Activate(context.Background(), state)

		assert.Equal(t, domain.ActionDefault, action)
		out := con.Output()
		assert.Contains(t, out, "🔔 REMINDER: 'Pay rent' is due in 30 minutes!")
		assert.Contains(t, out, "⚠️ OVERDUE: 'Buy milk' was due at 2026-10-19 09:00:00!")
		assert.Equal(t, 2, strings.Count(out, strings.Repeat("❗", 20)))
	})

	t.Run("Silent Without Alerts", func(t *testing.T) {
		con := testutils.NewConsole()
		state := domain.NewState([]domain.Task{{Description: "Someday", Scheduled: "someday"}})

		(&steps.CheckDeadlines{Console: con, Now: testutils.FixedClock(now)}).Node().Activate(context.Background(), state)

		assert.Empty(t, con.Output())
	})
}

func TestSave_FailureLoggedOnce(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.NewWithWriter(&logs, slog.LevelDebug)

	store := memory.NewStore()
	store.FailWith(errors.New("disk full"))
	handle := session.NewManager(store, session.WithLogger(logger))

	state := &domain.State{Tasks: []domain.Task{{Description: "Buy milk"}}}
	con := testutils.NewConsole()
	(&steps.Save{Store: handle, Console: con, Logger: logger}).Node().Activate(context.Background(), state)

	assert.Equal(t, 1, strings.Count(logs.String(), "level=ERROR"), logs.String())
	assert.Contains(t, con.Output(), "Error saving tasks: disk full")
}
