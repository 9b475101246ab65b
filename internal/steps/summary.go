package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// Board is the rendered task board.
type Board struct {
	Lines        []string
	TotalMinutes int
}

// Workload formats the total as "Hh Mm", or "Mm" under an hour.
func (b Board) Workload() string {
	return FormatWorkload(b.TotalMinutes)
}

// Summary prints the board and the total workload.
type Summary struct {
	Console console.Console
}

func (s *Summary) Node() ports.Node[domain.State] {
	return dsl.Wrap[domain.State, []domain.Task, Board](NodeSummary, s)
}

func (s *Summary) Prepare(state domain.State) []domain.Task {
	return state.Tasks
}

func (s *Summary) Execute(ctx context.Context, tasks []domain.Task) Board {
	board := BuildBoard(tasks)
	s.Console.Markdown(board.Markdown())
	return board
}

func (s *Summary) Finalize(state *domain.State, tasks []domain.Task, board Board) domain.Action {
	return domain.ActionDefault
}

// BuildBoard computes the board lines and workload of tasks.
func BuildBoard(tasks []domain.Task) Board {
	b := Board{Lines: make([]string, 0, len(tasks))}
	for i, t := range tasks {
		minutes := t.TotalMinutes()
		b.TotalMinutes += minutes

		badge := ""
		if minutes > 0 {
			badge = fmt.Sprintf(" [~%dm]", minutes)
		}
		b.Lines = append(b.Lines, fmt.Sprintf(" %d. [%s] %s (Scheduled: %s)%s",
			i+1, t.Priority, t.Description, t.Scheduled, badge))
	}
	return b
}

// Markdown renders the board as a markdown document.
func (b Board) Markdown() string {
	var sb strings.Builder
	sb.WriteString("## 📋 CURRENT TASK BOARD\n\n")
	if len(b.Lines) == 0 {
		sb.WriteString("_No tasks yet._\n")
	}
	for _, line := range b.Lines {
		sb.WriteString(strings.TrimSpace(line))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n---\n\n**⏱️ Total Estimated Workload:** %s\n", b.Workload())
	return sb.String()
}

// FormatWorkload formats minutes as "Hh Mm", or "Mm" under an hour.
func FormatWorkload(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	hours, mins := minutes/60, minutes%60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
