package ports

import (
	"context"

	"github.com/aretw0/taskflow/pkg/domain"
)

// TaskStore persists the whole task list as one document.
type TaskStore interface {
	// Load returns the persisted list. A missing document yields an empty list
	// and no error. Undecodable content yields domain.ErrMalformedStore.
	Load(ctx context.Context) ([]domain.Task, error)

	// Save overwrites the persisted list with tasks.
	Save(ctx context.Context, tasks []domain.Task) error
}
