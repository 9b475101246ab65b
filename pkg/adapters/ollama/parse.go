package ollama

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// ErrNoSteps is returned when a reply holds no usable micro-step.
var ErrNoSteps = errors.New("model returned no steps")

// ParseSteps decodes a model reply into micro-steps.
//
// Accepted shapes: a list of step objects, a single step object, or an object
// wrapping the list under any key. Markdown code fences are stripped, numeric
// strings are accepted, bare strings become steps without an estimate,
// negative minutes become 0 and entries without a step
// text are dropped.
func ParseSteps(content string) ([]domain.MicroStep, error) {
	raw := stripFences(content)
	if raw == "" {
		return nil, ErrNoSteps
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON reply: %w", err)
	}

	items, err := stepItems(doc)
	if err != nil {
		return nil, err
	}

	steps := make([]domain.MicroStep, 0, len(items))
	for _, item := range items {
		var s domain.MicroStep
		if text, ok := item.(string); ok {
			item = map[string]any{"step": text}
		}
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(item); err != nil {
			return nil, fmt.Errorf("invalid step %v: %w", item, err)
		}
		s.Step = strings.TrimSpace(s.Step)
		if s.Step == "" {
			continue
		}
		if s.EstimatedMinutes < 0 {
			s.EstimatedMinutes = 0
		}
		steps = append(steps, s)
	}

	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	return steps, nil
}

func stepItems(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if _, ok := v["step"]; ok {
			return []any{v}, nil
		}
		// Wrapper object such as {"steps": [...]}; keys are visited in order
		// so the choice is stable.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if list, ok := v[k].([]any); ok {
				return list, nil
			}
		}
		return nil, ErrNoSteps
	default:
		return nil, fmt.Errorf("%w: unexpected reply type %T", ErrNoSteps, doc)
	}
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
