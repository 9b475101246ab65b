package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/taskflow/pkg/adapters/memory"
	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/aretw0/taskflow/pkg/ports"
	"github.com/aretw0/taskflow/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Load(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, tasks []domain.Task) error {
	return m.Called(ctx, tasks).Error(0)
}

// countingStore counts loads and can be told to fail them.
type countingStore struct {
	ports.TaskStore
	mu      sync.Mutex
	loads   int
	loadErr error
}

func (s *countingStore) Load(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	s.loads++
	err := s.loadErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.TaskStore.Load(ctx)
}

func TestManager_Contract(t *testing.T) {
	ports.RunTaskStoreContract(t, session.NewManager(memory.NewStore()))
}

func TestManager_HydratesOnce(t *testing.T) {
	store := &countingStore{TaskStore: memory.NewStore(domain.Task{Description: "Buy milk"})}
	m := session.NewManager(store)
	ctx := context.Background()

	assert.False(t, m.Loaded())

	first, err := m.Hydrate(ctx)
	require.NoError(t, err)
	second, err := m.Hydrate(ctx)
	require.NoError(t, err)

	assert.True(t, m.Loaded())
	assert.Equal(t, 1, store.loads)
	assert.Equal(t, first.Tasks, second.Tasks)

	first.Tasks[0].Description = "mutated"
	third, err := m.Hydrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", third.Tasks[0].Description, "states must not share the cached list")
}

func TestManager_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"Malformed Becomes Empty", fmt.Errorf("%w: bad yaml", domain.ErrMalformedStore), false},
		{"IO Error Propagates", errors.New("connection refused"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{TaskStore: memory.NewStore(), loadErr: tt.err}
			m := session.NewManager(store)

			state, err := m.Hydrate(context.Background())
			if tt.wantErr {
				assert.ErrorContains(t, err, "connection refused")
				assert.False(t, m.Loaded())
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, state.Tasks)
			assert.Empty(t, state.Tasks)
			assert.True(t, m.Loaded())
		})
	}
}

func TestManager_SaveFailureKeepsCache(t *testing.T) {
	store := memory.NewStore(domain.Task{Description: "Buy milk"})
	m := session.NewManager(store)
	ctx := context.Background()

	_, err := m.Hydrate(ctx)
	require.NoError(t, err)

	boom := errors.New("disk full")
	store.FailWith(boom)
	err = m.Save(ctx, nil)
	assert.ErrorIs(t, err, boom)

	tasks, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestManager_ConcurrentSaves(t *testing.T) {
	m := session.NewManager(memory.NewStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.Save(ctx, []domain.Task{{Description: fmt.Sprintf("task %d", i)}})
		}(i)
	}
	wg.Wait()

	tasks, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestManager_WritesThrough(t *testing.T) {
	ctx := context.Background()
	seed := []domain.Task{{ID: "1", Description: "Buy milk", Priority: domain.PriorityLow}}
	next := append(seed, domain.Task{ID: "2", Description: "Call mom", Priority: domain.PriorityHigh})

	store := new(mockStore)
	store.On("Load", ctx).Return(seed, nil).Once()
	store.On("Save", ctx, next).Return(nil).Once()

	m := session.NewManager(store)
	_, err := m.Hydrate(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, next))

	tasks, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, tasks, "load after save is served from the cache")

	store.AssertExpectations(t)
}
