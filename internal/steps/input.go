package steps

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/taskflow/pkg/console"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/dsl"
	"github.com/aretw0/taskflow/pkg/ports"
)

// CommandKind tags the menu command read by the input node.
type CommandKind int

const (
	CommandInvalid CommandKind = iota
	CommandExit
	CommandCreate
	CommandDone
	CommandDelete
	CommandView
	CommandBack
)

// Command is the outcome of one menu interaction.
// Draft is set for CommandCreate; Target (zero-based) for CommandDone and
// CommandDelete.
type Command struct {
	Kind   CommandKind
	Draft  *domain.Draft
	Target int
}

// Action maps the command to its outgoing edge.
func (c Command) Action() domain.Action {
	switch c.Kind {
	case CommandExit:
		return ActionExit
	case CommandCreate:
		return ActionCreate
	case CommandDone:
		return ActionDone
	case CommandDelete:
		return ActionDelete
	case CommandView:
		return ActionView
	case CommandBack:
		return ActionBack
	default:
		return ActionInvalidCmd
	}
}

// Input shows the main menu and reads one command.
type Input struct {
	Console console.Console
	Logger  *slog.Logger
}

// Node binds the step to NodeInput.
func (s *Input) Node() ports.Node[domain.State] {
	return dsl.Wrap[domain.State, []domain.Task, Command](NodeInput, s)
}

func (s *Input) Actions() []domain.Action {
	return []domain.Action{
		ActionExit, ActionCreate, ActionDone, ActionDelete,
		ActionView, ActionBack, ActionInvalidCmd,
	}
}

func (s *Input) Prepare(state domain.State) []domain.Task {
	return state.Tasks
}

func (s *Input) Execute(ctx context.Context, tasks []domain.Task) Command {
	s.Console.Say("\n%s", strings.Repeat("=", 40))
	s.Console.Say("🎛️  MAIN MENU")
	s.Console.Say("1. 📝 Create a new task")
	s.Console.Say("2. ✅ Mark task as done")
	s.Console.Say("3. 🗑️ Delete task")
	s.Console.Say("4. 📋 View task board")
	s.Console.Say("5. 🚪 Exit")
	s.Console.Say("%s", strings.Repeat("=", 40))

	choice, ok := s.ask(ctx, "👉 Select an option (1-5): ")
	if !ok {
		return Command{Kind: CommandExit}
	}

	switch {
	case choice == "5" || strings.EqualFold(choice, "exit"):
		return Command{Kind: CommandExit}
	case choice == "1":
		return s.readDraft(ctx)
	case choice == "2":
		return s.readTarget(ctx, tasks, CommandDone,
			"⚠️ You have no tasks to mark as done!",
			"📋 Tasks available to complete:",
			"✅ Which task number is done? (e.g., 1, or 'b' to go back): ")
	case choice == "3":
		return s.readTarget(ctx, tasks, CommandDelete,
			"⚠️ You have no tasks to delete!",
			"📋 Tasks available to delete:",
			"🗑️ Which task number to delete? (e.g., 1, or 'b' to go back): ")
	case choice == "4":
		return Command{Kind: CommandView}
	default:
		s.Console.Say("⚠️ Invalid choice. Please select 1-5.")
		return Command{Kind: CommandInvalid}
	}
}

func (s *Input) Finalize(state *domain.State, tasks []domain.Task, cmd Command) domain.Action {
	state.ResetTurn()

	switch cmd.Kind {
	case CommandExit:
		s.Console.Say("👋 Shutting down Smart Task Assistant. Goodbye!")
	case CommandCreate:
		draft := *cmd.Draft
		state.Turn.Draft = &draft
	case CommandDone, CommandDelete:
		target := cmd.Target
		state.Turn.Target = &target
	}
	return cmd.Action()
}

func (s *Input) readDraft(ctx context.Context) Command {
	desc, ok := s.ask(ctx, "\n📝 Enter task description (or 'b' to go back): ")
	if !ok {
		return Command{Kind: CommandExit}
	}
	if isBack(desc) {
		return Command{Kind: CommandBack}
	}
	priority, ok := s.ask(ctx, "🔥 Enter Priority (e.g., High, Low): ")
	if !ok {
		return Command{Kind: CommandExit}
	}
	deadline, ok := s.ask(ctx, "📅 Enter Calendar/Deadline (e.g., Tomorrow at 5pm): ")
	if !ok {
		return Command{Kind: CommandExit}
	}
	return Command{
		Kind: CommandCreate,
		Draft: &domain.Draft{
			Description:  desc,
			PriorityHint: priority,
			DeadlineHint: deadline,
		},
	}
}

func (s *Input) readTarget(ctx context.Context, tasks []domain.Task, kind CommandKind, empty, header, prompt string) Command {
	if len(tasks) == 0 {
		s.Console.Say("\n%s", empty)
		return Command{Kind: CommandBack}
	}

	s.Console.Say("\n%s", header)
	for i, t := range tasks {
		s.Console.Say("  %d. %s", i+1, t.Description)
	}

	answer, ok := s.ask(ctx, "\n"+prompt)
	if !ok {
		return Command{Kind: CommandExit}
	}
	if isBack(answer) {
		return Command{Kind: CommandBack}
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		s.Console.Say("⚠️ Invalid format. Please enter a number.")
		return Command{Kind: CommandInvalid}
	}
	idx := n - 1
	if idx < 0 || idx >= len(tasks) {
		s.Console.Say("⚠️ Task number out of range.")
		return Command{Kind: CommandInvalid}
	}
	return Command{Kind: kind, Target: idx}
}

// ask returns false when input is exhausted or the context is done.
func (s *Input) ask(ctx context.Context, prompt string) (string, bool) {
	line, err := s.Console.Ask(ctx, prompt)
	if err != nil {
		if !errors.Is(err, io.EOF) && ctx.Err() == nil {
			orNop(s.Logger).Warn("console read failed", "err", err)
		}
		return "", false
	}
	return strings.TrimSpace(line), true
}

func isBack(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "b" || s == "back"
}
