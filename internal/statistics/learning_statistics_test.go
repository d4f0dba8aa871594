package statistics

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t-yamaguchi/recite/internal/sentence"
	"github.com/t-yamaguchi/recite/internal/session"
)

func sentenceColumns() []string {
	return []string{
		"id", "user_id", "original_text", "language_code", "category",
		"score", "review_count", "last_review", "next_review", "created_at",
	}
}

func TestCollector_Collect(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, -1, 0)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      LearningStatistics
		wantError bool
	}{
		{
			name: "Aggregates sentences and sessions",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM sentences WHERE user_id = \\? ORDER BY id").
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(sentenceColumns()).
						AddRow(1, 1, "Guten Morgen.", "de", "greetings", 0.9, 3, now.AddDate(0, 0, -8), now.AddDate(0, 0, -1), created).
						AddRow(2, 1, "Wie geht es dir?", "de", "greetings", 0.5, 1, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), created).
						AddRow(3, 1, "Das Buch liegt auf dem Tisch.", "de", nil, 0.7, 2, now.AddDate(0, 0, -6), now, created))
				mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM sessions WHERE user_id = \\?").
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
			},
			want: LearningStatistics{
				TotalSentences: 3,
				TotalSessions:  6,
				AverageScore:   0.7,
				DueCount:       2, // the boundary sentence counts as due
			},
		},
		{
			name: "Empty account",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM sentences WHERE user_id = \\? ORDER BY id").
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(sentenceColumns()))
				mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM sessions WHERE user_id = \\?").
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			},
			want: LearningStatistics{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()
			tt.setupMock(mock)

			db := sqlx.NewDb(mockDB, "mysql")
			collector := NewCollector(
				sentence.NewDBSentenceRepository(db),
				session.NewDBSessionRepository(db),
			)

			got, gotErr := collector.Collect(context.Background(), 1, now)
			if tt.wantError {
				require.Error(t, gotErr)
				return
			}
			require.NoError(t, gotErr)
			assert.InDelta(t, tt.want.AverageScore, got.AverageScore, 1e-9)
			got.AverageScore = tt.want.AverageScore
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCollector_CollectReport(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := now.AddDate(0, -1, 0)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	sentenceRows := func() *sqlmock.Rows {
		return sqlmock.NewRows(sentenceColumns()).
			AddRow(1, 1, "Guten Morgen.", "de", "greetings", 1.0, 3, now.AddDate(0, 0, -8), now.AddDate(0, 0, -1), created).
			AddRow(2, 1, "Wie geht es dir?", "de", "greetings", 0.5, 1, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), created).
			AddRow(3, 1, "Das Buch liegt auf dem Tisch.", "de", nil, 0.6, 2, now.AddDate(0, 0, -6), now, created)
	}

	// CollectReport reads the sentences twice, once for the totals and
	// once for the breakdown.
	mock.ExpectQuery("SELECT \\* FROM sentences WHERE user_id = \\? ORDER BY id").
		WithArgs(int64(1)).
		WillReturnRows(sentenceRows())
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM sessions WHERE user_id = \\?").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("SELECT \\* FROM sentences WHERE user_id = \\? ORDER BY id").
		WithArgs(int64(1)).
		WillReturnRows(sentenceRows())

	db := sqlx.NewDb(mockDB, "mysql")
	collector := NewCollector(
		sentence.NewDBSentenceRepository(db),
		session.NewDBSessionRepository(db),
	)

	report, err := collector.CollectReport(context.Background(), 1, now)
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.UserID)
	assert.Equal(t, now, report.GeneratedAt)
	assert.Equal(t, 3, report.Totals.TotalSentences)
	assert.Equal(t, 4, report.Totals.TotalSessions)
	assert.Equal(t, 2, report.Totals.DueCount)
	assert.InDelta(t, 0.7, report.Totals.AverageScore, 1e-9)

	require.Len(t, report.Categories, 2)
	assert.Equal(t, "(uncategorized)", report.Categories[0].Category)
	assert.Equal(t, 1, report.Categories[0].TotalSentences)
	assert.Equal(t, 1, report.Categories[0].DueCount)
	assert.Equal(t, "greetings", report.Categories[1].Category)
	assert.Equal(t, 2, report.Categories[1].TotalSentences)
	assert.Equal(t, 1, report.Categories[1].DueCount)
	assert.InDelta(t, 0.75, report.Categories[1].AverageScore, 1e-9)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenderMarkdown(t *testing.T) {
	report := Report{
		UserID:      1,
		GeneratedAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		Totals: LearningStatistics{
			TotalSentences: 3,
			TotalSessions:  4,
			AverageScore:   0.7,
			DueCount:       2,
		},
		Categories: []CategoryStatistics{
			{Category: "greetings", TotalSentences: 2, AverageScore: 0.75, DueCount: 1},
		},
	}

	got := RenderMarkdown(report)
	assert.Contains(t, got, "# Learning Report")
	assert.Contains(t, got, "Generated at 2025-03-10 12:00")
	assert.Contains(t, got, "| 3 | 4 | 0.70 | 2 |")
	assert.Contains(t, got, "| greetings | 2 | 0.75 | 1 |")
}

func TestRenderMarkdown_withoutCategories(t *testing.T) {
	got := RenderMarkdown(Report{
		GeneratedAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, got, "## Totals")
	assert.NotContains(t, got, "## By category")
}
