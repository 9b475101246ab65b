package steps

import (
	"log/slog"

	"github.com/aretw0/taskflow/internal/logging"
	"github.com/aretw0/taskflow/pkg/domain"
)

// Node identifiers.
const (
	NodeInput          = "input"
	NodeValidate       = "validate"
	NodeCategorize     = "categorize"
	NodeProcess        = "process"
	NodeSave           = "save"
	NodeSummary        = "summary"
	NodeUpdate         = "update"
	NodeDelete         = "delete"
	NodeCheckDeadlines = "check_deadlines"
)

// Actions returned by the steps.
const (
	ActionCreate     domain.Action = "create"
	ActionDone       domain.Action = "done"
	ActionDelete     domain.Action = "delete"
	ActionView       domain.Action = "view"
	ActionBack       domain.Action = "back"
	ActionInvalidCmd domain.Action = "invalid_cmd"
	ActionExit       domain.Action = "exit"

	ActionValid   domain.Action = "valid"
	ActionInvalid domain.Action = "invalid"

	ActionHighPriority domain.Action = "high_priority"
	ActionLowPriority  domain.Action = "low_priority"
)

func orNop(l *slog.Logger) *slog.Logger {
	if l == nil {
		return logging.NewNop()
	}
	return l
}
