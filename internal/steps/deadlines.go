package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// ReminderWindow is how far ahead a deadline triggers a reminder.
const ReminderWindow = time.Hour

// AlertKind distinguishes reminders from overdue notices.
type AlertKind int

const (
	AlertReminder AlertKind = iota
	AlertOverdue
)

// Alert is one deadline notice.
type Alert struct {
	Kind      AlertKind
	Task      string
	Scheduled string
	// MinsLeft is set for reminders.
	MinsLeft int
}

func (a Alert) String() string {
	if a.Kind == AlertOverdue {
		return fmt.Sprintf("⚠️ OVERDUE: '%s' was due at %s!", a.Task, a.Scheduled)
	}
	return fmt.Sprintf("🔔 REMINDER: '%s' is due in %d minutes!", a.Task, a.MinsLeft)
}

// CheckDeadlines warns about tasks due within the hour and overdue tasks.
type CheckDeadlines struct {
	Console console.Console
	// Now defaults to time.Now. Schedules are read in its location.
	Now func() time.Time
}

func (s *CheckDeadlines) Node() ports.Node[domain.State] {
	return dsl.Wrap[domain.State, []domain.Task, []Alert](NodeCheckDeadlines, s)
}

func (s *CheckDeadlines) Prepare(state domain.State) []domain.Task {
	return state.Tasks
}

func (s *CheckDeadlines) Execute(ctx context.Context, tasks []domain.Task) []Alert {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	alerts := FindAlerts(tasks, now)
	if len(alerts) > 0 {
		frame := strings.Repeat("❗", 20)
		s.Console.Say("\n%s", frame)
		for _, a := range alerts {
			s.Console.Say("%s", a)
		}
		s.Console.Say("%s", frame)
	}
	return alerts
}

func (s *CheckDeadlines) Finalize(state *domain.State, tasks []domain.Task, alerts []Alert) domain.Action {
	return domain.ActionDefault
}

// FindAlerts classifies every task with a canonical schedule relative to now.
// Literal schedules are skipped.
func FindAlerts(tasks []domain.Task, now time.Time) []Alert {
	var alerts []Alert
	for _, t := range tasks {
		due, ok := t.Deadline(now.Location())
		if !ok {
			continue
		}
		delta := due.Sub(now)
		switch {
		case delta < 0:
			alerts = append(alerts, Alert{Kind: AlertOverdue, Task: t.Description, Scheduled: t.Scheduled})
		case delta <= ReminderWindow:
			alerts = append(alerts, Alert{
				Kind:      AlertReminder,
				Task:      t.Description,
				Scheduled: t.Scheduled,
				MinsLeft:  int(delta / time.Minute),
			})
		}
	}
	return alerts
}
