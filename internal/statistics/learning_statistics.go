// Package statistics aggregates a user's learning progress across their
// sentences and recorded practice sessions.
package statistics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/t-yamaguchi/recite/internal/scheduling"
	"github.com/t-yamaguchi/recite/internal/sentence"
	"github.com/t-yamaguchi/recite/internal/session"
)

// LearningStatistics holds a user's aggregate learning numbers.
type LearningStatistics struct {
	TotalSentences int
	TotalSessions  int
	AverageScore   float64 // mean of the sentences' current scores, 0 without sentences
	DueCount       int     // sentences due for review at collection time
}

// CategoryStatistics holds the same numbers restricted to one category.
type CategoryStatistics struct {
	Category       string
	TotalSentences int
	AverageScore   float64
	DueCount       int
}

// Report combines the aggregate and per-category views.
type Report struct {
	UserID      int64
	GeneratedAt time.Time
	Totals      LearningStatistics
	Categories  []CategoryStatistics
}

// Collector reads the repositories and computes statistics.
type Collector struct {
	sentenceRepository sentence.SentenceRepository
	sessionRepository  session.SessionRepository
}

func NewCollector(
	sentenceRepository sentence.SentenceRepository,
	sessionRepository session.SessionRepository,
) *Collector {
	return &Collector{
		sentenceRepository: sentenceRepository,
		sessionRepository:  sessionRepository,
	}
}

// Collect computes a user's statistics as of now.
func (c *Collector) Collect(ctx context.Context, userID int64, now time.Time) (LearningStatistics, error) {
	sentences, err := c.sentenceRepository.FindByUser(ctx, userID)
	if err != nil {
		return LearningStatistics{}, fmt.Errorf("find sentences: %w", err)
	}
	totalSessions, err := c.sessionRepository.CountByUser(ctx, userID)
	if err != nil {
		return LearningStatistics{}, fmt.Errorf("count sessions: %w", err)
	}

	stats := summarize(sentences, now)
	stats.TotalSessions = totalSessions
	return stats, nil
}

// CollectReport computes the aggregate statistics plus a per-category
// breakdown, sorted by category name. Sentences without a category are
// grouped under "(uncategorized)".
func (c *Collector) CollectReport(ctx context.Context, userID int64, now time.Time) (Report, error) {
	totals, err := c.Collect(ctx, userID, now)
	if err != nil {
		return Report{}, err
	}

	sentences, err := c.sentenceRepository.FindByUser(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("find sentences: %w", err)
	}

	byCategory := make(map[string][]sentence.Sentence)
	for _, s := range sentences {
		category := uncategorized
		if s.Category != nil && *s.Category != "" {
			category = *s.Category
		}
		byCategory[category] = append(byCategory[category], s)
	}

	categories := make([]CategoryStatistics, 0, len(byCategory))
	for category, group := range byCategory {
		stats := summarize(group, now)
		categories = append(categories, CategoryStatistics{
			Category:       category,
			TotalSentences: stats.TotalSentences,
			AverageScore:   stats.AverageScore,
			DueCount:       stats.DueCount,
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return Report{
		UserID:      userID,
		GeneratedAt: now,
		Totals:      totals,
		Categories:  categories,
	}, nil
}

const uncategorized = "(uncategorized)"

func summarize(sentences []sentence.Sentence, now time.Time) LearningStatistics {
	stats := LearningStatistics{
		TotalSentences: len(sentences),
	}
	if len(sentences) == 0 {
		return stats
	}

	items := make([]scheduling.Item, 0, len(sentences))
	var sum float64
	for _, s := range sentences {
		sum += s.Score
		items = append(items, scheduling.Item{ID: s.ID, State: s.State()})
	}
	stats.AverageScore = sum / float64(len(sentences))
	stats.DueCount = len(scheduling.SelectDue(items, now))
	return stats
}

// RenderMarkdown renders the report for terminal display or PDF export.
func RenderMarkdown(report Report) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "# Learning Report\n\n")
	fmt.Fprintf(&builder, "Generated at %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(&builder, "## Totals\n\n")
	fmt.Fprintf(&builder, "| Sentences | Sessions | Average score | Due now |\n")
	fmt.Fprintf(&builder, "| --- | --- | --- | --- |\n")
	fmt.Fprintf(&builder, "| %d | %d | %.2f | %d |\n\n",
		report.Totals.TotalSentences,
		report.Totals.TotalSessions,
		report.Totals.AverageScore,
		report.Totals.DueCount,
	)

	if len(report.Categories) == 0 {
		return builder.String()
	}

	fmt.Fprintf(&builder, "## By category\n\n")
	fmt.Fprintf(&builder, "| Category | Sentences | Average score | Due now |\n")
	fmt.Fprintf(&builder, "| --- | --- | --- | --- |\n")
	for _, category := range report.Categories {
		fmt.Fprintf(&builder, "| %s | %d | %.2f | %d |\n",
			category.Category,
			category.TotalSentences,
			category.AverageScore,
			category.DueCount,
		)
	}

	return builder.String()
}
