package steps

import (
	"context"
	"strings"

	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// PriorityTriggers mark a priority hint as HIGH when any is a substring of it.
var PriorityTriggers = []string{"high", "urgent", "asap", "priority", "important", "critical"}

// Categorize resolves the draft priority from the free-text hint.
type Categorize struct{}

func (s *Categorize) Node() ports.Node[domain.State] {
	return dsl.Wrap[domain.State, string, domain.Priority](NodeCategorize, s)
}

func (s *Categorize) Actions() []domain.Action {
	return []domain.Action{ActionHighPriority, ActionLowPriority}
}

func (s *Categorize) Prepare(state domain.State) string {
	if state.Turn.Draft == nil {
		return ""
	}
	return state.Turn.Draft.PriorityHint
}

func (s *Categorize) Execute(ctx context.Context, hint string) domain.Priority {
	return ClassifyPriority(hint)
}

func (s *Categorize) Finalize(state *domain.State, hint string, p domain.Priority) domain.Action {
	if state.Turn.Draft != nil {
		state.Turn.Draft.Priority = p
	}
	if p == domain.PriorityHigh {
		return ActionHighPriority
	}
	return ActionLowPriority
}

// ClassifyPriority maps a hint to HIGH or LOW, case-insensitively.
func ClassifyPriority(hint string) domain.Priority {
	text := strings.ToLower(hint)
	for _, word := range PriorityTriggers {
		if strings.Contains(text, word) {
			return domain.PriorityHigh
		}
	}
	return domain.PriorityLow
}
