package taskflow

import (
	"log/slog"
	"time"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/ports"
)

// Option defines a functional option for configuring the Assistant.
type Option func(*Assistant)

// WithConsole sets the user interface. Defaults to a text console on
// Stdin/Stdout.
func WithConsole(c console.Console) Option {
	return func(a *Assistant) {
		a.deps.Console = c
	}
}

// WithBreakdowner sets the micro-step breakdown service.
func WithBreakdowner(b ports.Breakdowner) Option {
	return func(a *Assistant) {
		a.deps.Breakdowner = b
	}
}

// WithDateParser sets the deadline parser.
func WithDateParser(p ports.DateParser) Option {
	return func(a *Assistant) {
		a.deps.Dates = p
	}
}

// WithClock overrides the current time source.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		a.deps.Now = now
	}
}

// WithIDGenerator overrides the task id generator.
func WithIDGenerator(newID func() string) Option {
	return func(a *Assistant) {
		a.deps.NewID = newID
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls add hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Assistant) {
		a.hooks = domain.MergeHooks(a.hooks, hooks)
	}
}
