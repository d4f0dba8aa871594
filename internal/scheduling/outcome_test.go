package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutcome(t *testing.T) {
	tests := []struct {
		name        string
		score       float64
		wantSuccess bool
		wantErr     bool
	}{
		{
			name:  "zero score is a failure",
			score: 0.0,
		},
		{
			name:  "score below threshold is a failure",
			score: 0.69,
		},
		{
			name:        "score at threshold is a success",
			score:       0.7,
			wantSuccess: true,
		},
		{
			name:        "full score is a success",
			score:       1.0,
			wantSuccess: true,
		},
		{
			name:    "score above range is rejected",
			score:   1.01,
			wantErr: true,
		},
		{
			name:    "negative score is rejected",
			score:   -0.5,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewOutcome(tt.score)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOutcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.wantSuccess, got.IsSuccess)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestNewOutcomeWithThreshold(t *testing.T) {
	tests := []struct {
		name        string
		score       float64
		threshold   float64
		wantSuccess bool
		wantErr     bool
	}{
		{
			name:        "lenient threshold turns a mid score into a success",
			score:       0.6,
			threshold:   0.5,
			wantSuccess: true,
		},
		{
			name:      "strict threshold turns the same score into a failure",
			score:     0.6,
			threshold: 0.9,
		},
		{
			name:        "score at the custom threshold is a success",
			score:       0.5,
			threshold:   0.5,
			wantSuccess: true,
		},
		{
			name:      "threshold above range is rejected",
			score:     0.6,
			threshold: 1.5,
			wantErr:   true,
		},
		{
			name:      "negative threshold is rejected",
			score:     0.6,
			threshold: -0.1,
			wantErr:   true,
		},
		{
			name:      "out-of-range score is still rejected",
			score:     1.2,
			threshold: 0.5,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewOutcomeWithThreshold(tt.score, tt.threshold)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidOutcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.wantSuccess, got.IsSuccess)
		})
	}
}

func TestStateValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		state   State
		wantErr bool
	}{
		{
			name:  "new state is valid",
			state: NewState(now),
		},
		{
			name: "reviewed state is valid",
			state: State{
				Score:       0.8,
				ReviewCount: 3,
				LastReview:  &now,
				NextReview:  now.AddDate(0, 0, 6),
			},
		},
		{
			name:    "negative review count",
			state:   State{ReviewCount: -1, NextReview: now},
			wantErr: true,
		},
		{
			name:    "missing next review",
			state:   State{},
			wantErr: true,
		},
		{
			name:    "last review before any review",
			state:   State{LastReview: &now, NextReview: now},
			wantErr: true,
		},
		{
			name:    "missing last review after reviews",
			state:   State{ReviewCount: 1, NextReview: now},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidState)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStateDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.True(t, State{NextReview: now}.Due(now))
	assert.True(t, State{NextReview: now.Add(-time.Second)}.Due(now))
	assert.False(t, State{NextReview: now.Add(time.Second)}.Due(now))
}
