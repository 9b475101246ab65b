package ports

import (
	"context"
	"testing"

	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTaskStoreContract runs a suite of tests to verify that a TaskStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunTaskStoreContract(t *testing.T, store TaskStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		tasks, err := store.Load(ctx)
		require.NoError(t, err, "Load on an empty store should not fail")
		assert.Empty(t, tasks)
	})

	t.Run("Save and Load", func(t *testing.T) {
		want := []domain.Task{
			{
				ID:          "a1",
				Description: "Write quarterly report",
				Priority:    domain.PriorityHigh,
				Scheduled:   "2026-10-20 17:00:00",
				Breakdown: []domain.MicroStep{
					{Step: "Collect numbers", EstimatedMinutes: 30},
					{Step: "Draft summary", EstimatedMinutes: 45},
				},
			},
			{
				ID:          "b2",
				Description: "Call the plumber",
				Priority:    domain.PriorityLow,
				Scheduled:   "next blue moon",
				Breakdown: []domain.MicroStep{
					{Step: "Manual execution required (Error: offline)", EstimatedMinutes: 0},
				},
			},
		}

		require.NoError(t, store.Save(ctx, want))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got, "reloaded list should keep records, order and fields")
	})

	t.Run("Empty Breakdown Loads As Nil", func(t *testing.T) {
		saved := []domain.Task{
			{ID: "n1", Description: "No breakdown", Priority: domain.PriorityLow, Scheduled: "later"},
			{ID: "n2", Description: "Empty breakdown", Priority: domain.PriorityLow, Scheduled: "later", Breakdown: []domain.MicroStep{}},
		}
		require.NoError(t, store.Save(ctx, saved))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, task := range got {
			assert.Nil(t, task.Breakdown, task.Description)
		}
		assert.Equal(t, saved[0], got[0])
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		single := []domain.Task{{
			ID:          "c3",
			Description: "Only survivor",
			Priority:    domain.PriorityLow,
			Scheduled:   "2026-01-01 00:00:00",
			Breakdown:   []domain.MicroStep{{Step: "Wake up", EstimatedMinutes: 5}},
		}}
		require.NoError(t, store.Save(ctx, single))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, single, got)
	})

	t.Run("Save Empty", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, []domain.Task{}))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
