package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		items    []Item
		expected []int64
	}{
		{
			name:     "empty input yields empty output",
			items:    nil,
			expected: []int64{},
		},
		{
			name: "no due items yields empty output",
			items: []Item{
				{ID: 1, State: State{NextReview: now.Add(time.Hour)}},
				{ID: 2, State: State{NextReview: now.AddDate(0, 0, 3)}},
			},
			expected: []int64{},
		},
		{
			name: "due exactly at now is included",
			items: []Item{
				{ID: 7, State: State{NextReview: now}},
			},
			expected: []int64{7},
		},
		{
			name: "one second past due is excluded",
			items: []Item{
				{ID: 7, State: State{NextReview: now.Add(time.Second)}},
			},
			expected: []int64{},
		},
		{
			name: "most overdue first",
			items: []Item{
				{ID: 1, State: State{NextReview: now.Add(-time.Hour)}},
				{ID: 2, State: State{NextReview: now.AddDate(0, 0, -3)}},
				{ID: 3, State: State{NextReview: now.AddDate(0, 0, -1)}},
				{ID: 4, State: State{NextReview: now.Add(time.Minute)}},
			},
			expected: []int64{2, 3, 1},
		},
		{
			name: "identical next review times break ties by ascending ID",
			items: []Item{
				{ID: 9, State: State{NextReview: now.Add(-time.Hour)}},
				{ID: 3, State: State{NextReview: now.Add(-time.Hour)}},
				{ID: 6, State: State{NextReview: now.Add(-time.Hour)}},
			},
			expected: []int64{3, 6, 9},
		},
		{
			name: "newly created sentence is immediately due",
			items: []Item{
				{ID: 1, State: NewState(now)},
			},
			expected: []int64{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectDue(tt.items, now)
			assert.Equal(t, tt.expected, got)

			// Idempotent: a second call with the same inputs returns the
			// same ordered sequence.
			again := SelectDue(tt.items, now)
			assert.Equal(t, got, again)
		})
	}
}

func TestSelectDueDoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: 3, State: State{NextReview: now.Add(-time.Minute)}},
		{ID: 1, State: State{NextReview: now.Add(-time.Hour)}},
		{ID: 2, State: State{NextReview: now.Add(time.Hour)}},
	}

	_ = SelectDue(items, now)

	assert.Equal(t, int64(3), items[0].ID)
	assert.Equal(t, int64(1), items[1].ID)
	assert.Equal(t, int64(2), items[2].ID)
}

func TestReviewLifecycleScenarios(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	scheduler := NewScheduler()

	t.Run("success path with boundary-inclusive due check", func(t *testing.T) {
		item := Item{ID: 1, State: NewState(t0)}
		assert.Equal(t, []int64{1}, SelectDue([]Item{item}, t0))

		next, err := scheduler.ApplyReview(item.State, Outcome{Score: 0.8, IsSuccess: true}, t0)
		require.NoError(t, err)
		assert.Equal(t, t0.AddDate(0, 0, 2), next.NextReview)
		assert.Equal(t, 1, next.ReviewCount)

		item.State = next
		assert.Empty(t, SelectDue([]Item{item}, t0.AddDate(0, 0, 1)))
		assert.Equal(t, []int64{1}, SelectDue([]Item{item}, t0.AddDate(0, 0, 2)))
	})

	t.Run("failure path still increments the count", func(t *testing.T) {
		item := Item{ID: 1, State: NewState(t0)}

		next, err := scheduler.ApplyReview(item.State, Outcome{Score: 0.3, IsSuccess: false}, t0)
		require.NoError(t, err)
		assert.Equal(t, t0.AddDate(0, 0, 1), next.NextReview)
		assert.Equal(t, 1, next.ReviewCount)
	})
}
