package steps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ScheduleResult is the resolved deadline of a draft.
type ScheduleResult struct {
	Value string
	// Parsed is true when Value is a canonical timestamp read from the hint.
	Parsed bool
	// Defaulted is true when the hint was blank and Value is the current time.
	Defaulted bool
}

// BreakdownResult holds the breakdown service outcome.
type BreakdownResult struct {
	Steps []domain.MicroStep
	Err   error
}

// Resolved returns Steps, or the single placeholder step when the service
// failed.
func (r BreakdownResult) Resolved() []domain.MicroStep {
	if r.Err != nil {
		return []domain.MicroStep{{
			Step:             fmt.Sprintf("Manual execution required (Error: %v)", r.Err),
			EstimatedMinutes: 0,
		}}
	}
	return r.Steps
}

// ProcessResult is what the process node hands to Finalize.
type ProcessResult struct {
	ID        string
	Schedule  ScheduleResult
	Breakdown BreakdownResult
}

// Process turns a categorized draft into a task record.
type Process struct {
	Console     console.Console
	Breakdowner ports.Breakdowner
	Dates       ports.DateParser
	Logger      *slog.Logger

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

func (s *Process) Node() ports.Node[domain.State] {
	return dsl.Wrap[domain.State, domain.Draft, ProcessResult](NodeProcess, s)
}

func (s *Process) Prepare(state domain.State) domain.Draft {
	if state.Turn.Draft == nil {
		return domain.Draft{}
	}
	return *state.Turn.Draft
}

func (s *Process) Execute(ctx context.Context, draft domain.Draft) ProcessResult {
	res := ProcessResult{
		ID:       s.newID(),
		Schedule: s.schedule(draft.DeadlineHint),
	}

	s.Console.Say("\n🧠 Thinking... breaking down '%s' and estimating time...", draft.Description)
	res.Breakdown = s.breakdown(ctx, draft.Description)

	s.preview(draft, res)
	return res
}

func (s *Process) Finalize(state *domain.State, draft domain.Draft, res ProcessResult) domain.Action {
	state.Tasks = append(state.Tasks, domain.Task{
		ID:          res.ID,
		Description: draft.Description,
		Priority:    resolvedPriority(draft),
		Scheduled:   res.Schedule.Value,
		Breakdown:   res.Breakdown.Resolved(),
	})
	return domain.ActionDefault
}

func (s *Process) schedule(hint string) ScheduleResult {
	now := s.now()
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return ScheduleResult{Value: domain.FormatSchedule(now), Defaulted: true}
	}
	if s.Dates != nil {
		if ts, ok := s.Dates.Parse(hint, now); ok {
			return ScheduleResult{Value: domain.FormatSchedule(ts), Parsed: true}
		}
	}
	orNop(s.Logger).Debug("deadline kept verbatim", "hint", hint)
	return ScheduleResult{Value: hint}
}

func (s *Process) breakdown(ctx context.Context, description string) BreakdownResult {
	if s.Breakdowner == nil {
		return BreakdownResult{Err: fmt.Errorf("no breakdown service configured")}
	}
	steps, err := s.Breakdowner.Breakdown(ctx, description)
	if err == nil && len(steps) == 0 {
		err = fmt.Errorf("empty breakdown")
	}
	if err != nil {
		orNop(s.Logger).Warn("breakdown failed, using placeholder", "task", description, "err", err)
		return BreakdownResult{Err: err}
	}
	return BreakdownResult{Steps: steps}
}

type assistantOutput struct {
	Intent            string             `yaml:"intent"`
	Entities          map[string]string  `yaml:"entities"`
	Priority          domain.Priority    `yaml:"priority"`
	MicroSteps        []domain.MicroStep `yaml:"micro_steps"`
	SuggestedSchedule string             `yaml:"suggested_schedule"`
	Actions           []string           `yaml:"actions"`
}

func (s *Process) preview(draft domain.Draft, res ProcessResult) {
	out, err := yaml.Marshal(assistantOutput{
		Intent:            "process_and_breakdown_task",
		Entities:          map[string]string{"task_name": draft.Description},
		Priority:          resolvedPriority(draft),
		MicroSteps:        res.Breakdown.Resolved(),
		SuggestedSchedule: res.Schedule.Value,
		Actions:           []string{fmt.Sprintf("save_to_memory('%s')", draft.Description)},
	})
	if err != nil {
		orNop(s.Logger).Warn("failed to render preview", "err", err)
		return
	}
	s.Console.Say("🤖 Smart Task Assistant Output:")
	s.Console.Say("%s", strings.TrimRight(string(out), "\n"))
}

func (s *Process) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Process) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func resolvedPriority(d domain.Draft) domain.Priority {
	if d.Priority == "" {
		return domain.PriorityLow
	}
	return domain.Priority(strings.ToUpper(string(d.Priority)))
}
