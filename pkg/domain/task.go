package domain

import (
	"strings"
	"time"
)

// Priority is the derived urgency of a task.
type Priority string

const (
	PriorityHigh Priority = "HIGH"
	PriorityLow  Priority = "LOW"
)

// MicroStep is one actionable item of a task breakdown.
type MicroStep struct {
	Step             string `json:"step" yaml:"step" mapstructure:"step"`
	EstimatedMinutes int    `json:"estimated_minutes" yaml:"estimated_minutes" mapstructure:"estimated_minutes"`
}

// Task is one item on the board.
// Records are never edited in place: removal is the only mutation.
type Task struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty"`
	Description string      `json:"task" yaml:"task"`
	Priority    Priority    `json:"priority" yaml:"priority"`
	Scheduled   string      `json:"time" yaml:"time"`
	Breakdown   []MicroStep `json:"breakdown" yaml:"breakdown"`
}

// TotalMinutes sums the estimated minutes of the breakdown.
func (t Task) TotalMinutes() int {
	total := 0
	for _, s := range t.Breakdown {
		if s.EstimatedMinutes > 0 {
			total += s.EstimatedMinutes
		}
	}
	return total
}

// Deadline parses Scheduled with the strict canonical layout in loc.
// It reports false for literal schedules kept verbatim from an unparsed hint.
func (t Task) Deadline(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	ts, err := time.ParseInLocation(ScheduleLayout, strings.TrimSpace(t.Scheduled), loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// FormatSchedule renders ts in the canonical layout.
func FormatSchedule(ts time.Time) string {
	return ts.Format(ScheduleLayout)
}

// NormalizeTasks gives loaded task lists one shape across stores: the list is
// never nil and an empty breakdown is nil. It rewrites tasks in place.
func NormalizeTasks(tasks []Task) []Task {
	if tasks == nil {
		return []Task{}
	}
	for i := range tasks {
		if len(tasks[i].Breakdown) == 0 {
			tasks[i].Breakdown = nil
		}
	}
	return tasks
}
