package ports

import (
	"context"
	"time"

	"github.com/aretw0/taskflow/pkg/domain"
)

// Breakdowner splits a task description into actionable micro-steps with time estimates.
type Breakdowner interface {
	Breakdown(ctx context.Context, description string) ([]domain.MicroStep, error)
}

// DateParser resolves a free-text deadline hint relative to now.
// It reports false when the hint cannot be understood.
type DateParser interface {
	Parse(hint string, now time.Time) (time.Time, bool)
}

// BreakdownFunc adapts a function to the Breakdowner interface.
type BreakdownFunc func(ctx context.Context, description string) ([]domain.MicroStep, error)

// Breakdown calls f(ctx, description).
func (f BreakdownFunc) Breakdown(ctx context.Context, description string) ([]domain.MicroStep, error) {
	return f(ctx, description)
}

// DateParserFunc adapts a function to the DateParser interface.
type DateParserFunc func(hint string, now time.Time) (time.Time, bool)

// Parse calls f(hint, now).
func (f DateParserFunc) Parse(hint string, now time.Time) (time.Time, bool) {
	return f(hint, now)
}
