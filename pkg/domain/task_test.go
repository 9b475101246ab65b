package domain_test

import (
	"testing"
	"time"

	"github.com/aretw0/taskflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_TotalMinutes(t *testing.T) {
	tests := []struct {
		name  string
		steps []domain.MicroStep
		want  int
	}{
		{"No Breakdown", nil, 0},
		{"Sum", []domain.MicroStep{{Step: "a", EstimatedMinutes: 20}, {Step: "b", EstimatedMinutes: 45}}, 65},
		{"Negative Ignored", []domain.MicroStep{{Step: "a", EstimatedMinutes: -5}, {Step: "b", EstimatedMinutes: 10}}, 10},
		{"Placeholder", []domain.MicroStep{{Step: "Manual execution required", EstimatedMinutes: 0}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Task{Breakdown: tt.steps}.TotalMinutes())
		})
	}
}

func TestTask_Deadline(t *testing.T) {
	loc := time.FixedZone("EEST", 3*60*60)

	due, ok := domain.Task{Scheduled: "2026-10-20 17:00:00"}.Deadline(loc)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 20, 17, 0, 0, 0, loc), due)

	_, ok = domain.Task{Scheduled: " 2026-10-20 17:00:00 "}.Deadline(loc)
	assert.True(t, ok, "surrounding blanks are tolerated")

	for _, literal := range []string{"", "next week", "2026-10-20", "20/10/2026 17:00"} {
		_, ok := domain.Task{Scheduled: literal}.Deadline(loc)
		assert.False(t, ok, literal)
	}
}

func TestFormatSchedule(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 999, time.UTC)
	assert.Equal(t, "2026-01-02 03:04:05", domain.FormatSchedule(ts))

	back, ok := domain.Task{Scheduled: domain.FormatSchedule(ts)}.Deadline(time.UTC)
	require.True(t, ok)
	assert.Equal(t, ts.Truncate(time.Second), back)
}

func TestState_TurnAndSnapshot(t *testing.T) {
	s := domain.NewState(nil)
	assert.NotNil(t, s.Tasks)
	assert.Empty(t, s.Tasks)

	s.Tasks = append(s.Tasks, domain.Task{Description: "one"})
	target := 0
	s.Turn = domain.Turn{Draft: &domain.Draft{Description: "two"}, Target: &target}

	snap := s.Snapshot()
	snap[0].Description = "changed"
	assert.Equal(t, "one", s.Tasks[0].Description)

	s.ResetTurn()
	assert.Nil(t, s.Turn.Draft)
	assert.Nil(t, s.Turn.Target)
	assert.Len(t, s.Tasks, 1)
}

func TestNormalizeTasks(t *testing.T) {
	assert.Equal(t, []domain.Task{}, domain.NormalizeTasks(nil))

	got := domain.NormalizeTasks([]domain.Task{
		{Description: "empty", Breakdown: []domain.MicroStep{}},
		{Description: "full", Breakdown: []domain.MicroStep{{Step: "a", EstimatedMinutes: 5}}},
	})
	assert.Nil(t, got[0].Breakdown)
	assert.Len(t, got[1].Breakdown, 1)
}
