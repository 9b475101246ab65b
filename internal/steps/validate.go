package steps

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// Validate rejects drafts whose description is too short to act on.
type Validate struct {
	Console console.Console
}

func (s *Validate) Node() ports.Node[domain.State] {
	return dsl.Wrap[domain.State, string, bool](NodeValidate, s)
}

func (s *Validate) Actions() []domain.Action {
	return []domain.Action{ActionValid, ActionInvalid}
}

func (s *Validate) Prepare(state domain.State) string {
	if state.Turn.Draft == nil {
		return ""
	}
	return state.Turn.Draft.Description
}

func (s *Validate) Execute(ctx context.Context, description string) bool {
	return IsValidDescription(description)
}

func (s *Validate) Finalize(state *domain.State, description string, valid bool) domain.Action {
	if !valid {
		s.Console.Say("⚠️ Error: Task description too vague. Please provide more detail.")
		return ActionInvalid
	}
	return ActionValid
}

// IsValidDescription reports whether the trimmed description has at least
// domain.MinDescriptionLength characters.
func IsValidDescription(description string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(description)) >= domain.MinDescriptionLength
}
