package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/taskflow/internal/logging"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/ports"
)

// Manager is the session handle around a task store.
//
// It hydrates the task list once per process and serializes writes.
// It implements ports.TaskStore so the save node can use it directly.
type Manager struct {
	store  ports.TaskStore
	logger *slog.Logger

	mu     sync.Mutex
	loaded bool
	tasks  []domain.Task
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a session handle over store.
func NewManager(store ports.TaskStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Loaded reports whether the task list has been hydrated.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Hydrate returns a fresh state holding the persisted task list.
// Only the first call reads the store; later calls reuse the cached list.
func (m *Manager) Hydrate(ctx context.Context) (*domain.State, error) {
	tasks, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewState(tasks), nil
}

// Load returns a copy of the task list, reading the store on first use.
// Malformed content is logged and treated as an empty list.
func (m *Manager) Load(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		tasks, err := m.store.Load(ctx)
		switch {
		case errors.Is(err, domain.ErrMalformedStore):
			m.logger.Warn("task store unreadable, starting empty", "err", err)
			tasks = []domain.Task{}
		case err != nil:
			return nil, fmt.Errorf("failed to load tasks: %w", err)
		}
		if tasks == nil {
			tasks = []domain.Task{}
		}
		m.tasks = tasks
		m.loaded = true
		m.logger.Debug("session hydrated", "tasks", len(tasks))
	}

	out := make([]domain.Task, len(m.tasks))
	copy(out, m.tasks)
	return out, nil
}

// Save writes tasks through to the store. The cached list follows only
// successful writes.
func (m *Manager) Save(ctx context.Context, tasks []domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(ctx, tasks); err != nil {
		m.logger.Debug("save failed, cache kept", "tasks", len(tasks))
		return err
	}
	m.tasks = append([]domain.Task(nil), tasks...)
	m.loaded = true
	m.logger.Debug("tasks saved", "tasks", len(tasks))
	return nil
}
