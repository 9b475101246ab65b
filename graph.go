package taskflow

import (
	"log/slog"
	"time"

	"github.com/aretw0/taskflow/internal/steps"
	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// Dependencies are the collaborators the task graph is built from.
type Dependencies struct {
	Console     console.Console
	Store       ports.TaskStore
	Breakdowner ports.Breakdowner
	Dates       ports.DateParser
	Logger      *slog.Logger
	Now         func() time.Time
	NewID       func() string
}

// BuildGraph wires the nine task nodes into a validated transition table.
func BuildGraph(d Dependencies) (*dsl.Graph[domain.State], error) {
	b := dsl.New[domain.State]()

	b.Add((&steps.Input{Console: d.Console, Logger: d.Logger}).Node()).
		On(steps.ActionCreate, steps.NodeValidate).
		On(steps.ActionDone, steps.NodeUpdate).
		On(steps.ActionDelete, steps.NodeDelete).
		On(steps.ActionView, steps.NodeSummary).
		On(steps.ActionBack, steps.NodeInput).
		On(steps.ActionInvalidCmd, steps.NodeInput).
		Terminal(steps.ActionExit)

	b.Add((&steps.Validate{Console: d.Console}).Node()).
		On(steps.ActionInvalid, steps.NodeInput).
		On(steps.ActionValid, steps.NodeCategorize)

	// Both priorities share the process node.
	b.Add((&steps.Categorize{}).Node()).
		On(steps.ActionHighPriority, steps.NodeProcess).
		On(steps.ActionLowPriority, steps.NodeProcess)

	b.Add((&steps.Process{
		Console:     d.Console,
		Breakdowner: d.Breakdowner,
		Dates:       d.Dates,
		Logger:      d.Logger,
		Now:         d.Now,
		NewID:       d.NewID,
	}).Node()).
		Default(steps.NodeSave)

	b.Add(steps.NewUpdate(d.Console).Node()).
		Default(steps.NodeSave)

	b.Add(steps.NewDelete(d.Console).Node()).
		Default(steps.NodeSave)

	b.Add((&steps.Save{Store: d.Store, Console: d.Console, Logger: d.Logger}).Node()).
		Default(steps.NodeSummary)

	b.Add((&steps.Summary{Console: d.Console}).Node()).
		Default(steps.NodeCheckDeadlines)

	b.Add((&steps.CheckDeadlines{Console: d.Console, Now: d.Now}).Node()).
		Default(steps.NodeInput)

	return b.Start(steps.NodeInput).Build()
}
