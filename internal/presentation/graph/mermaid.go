package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/taskflow/pkg/domain"
)

const terminalID = "__end__"

// Diagram describes a compiled flow for rendering.
type Diagram struct {
	Entry       string
	Nodes       []string
	Transitions []domain.Transition
	// Interactive nodes read from the user and are drawn as parallelograms.
	Interactive []string
}

// GenerateMermaid produces a Mermaid flowchart from a diagram.
// Shapes:
// - Entry: ((Circle))
// - Interactive: [/Parallelogram/]
// - Default: [Rectangle]
// Default edges are unlabeled; terminal actions point at a shared end node.
func GenerateMermaid(d Diagram) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	interactive := make(map[string]bool, len(d.Interactive))
	for _, id := range d.Interactive {
		interactive[id] = true
	}

	for _, id := range d.Nodes {
		opener, closer := "[", "]"
		switch {
		case id == d.Entry:
			opener, closer = "((", "))"
		case interactive[id]:
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(id), opener, id, closer)
	}

	hasTerminal := false
	for _, t := range d.Transitions {
		from := sanitizeMermaidID(t.FromNodeID)
		label := strings.ReplaceAll(string(t.Action), "\"", "'")

		switch {
		case t.Terminal:
			hasTerminal = true
			fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", from, label, terminalID)
		case t.Action == domain.ActionDefault:
			fmt.Fprintf(&sb, "    %s --> %s\n", from, sanitizeMermaidID(t.ToNodeID))
		default:
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, label, sanitizeMermaidID(t.ToNodeID))
		}
	}

	if hasTerminal {
		fmt.Fprintf(&sb, "    %s(((\"end\")))\n", terminalID)
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
