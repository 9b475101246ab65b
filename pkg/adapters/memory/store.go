package memory

import (
	"context"
	"sync"

	"github.com/aretw0/taskflow/pkg/domain"
)

// Store implements ports.TaskStore in memory.
// Safe for concurrent use.
type Store struct {
	tasks []domain.Task
	mu    sync.RWMutex
	saves int
	err   error
}

// NewStore creates a new in-memory store, optionally seeded.
func NewStore(seed ...domain.Task) *Store {
	return &Store{tasks: cloneTasks(seed)}
}

// FailWith makes every subsequent Save return err. A nil err clears it.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Saves reports how many times Save succeeded.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Save replaces the stored list with a deep copy of tasks.
func (s *Store) Save(ctx context.Context, tasks []domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.tasks = cloneTasks(tasks)
	s.saves++
	return nil
}

// Load returns a deep copy so callers cannot mutate the stored list.
func (s *Store) Load(ctx context.Context) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTasks(s.tasks), nil
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t
		out[i].Breakdown = nil
		if len(t.Breakdown) > 0 {
			out[i].Breakdown = append([]domain.MicroStep(nil), t.Breakdown...)
		}
	}
	return domain.NormalizeTasks(out)
}
