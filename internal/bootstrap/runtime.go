package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/t-yamaguchi/recite/internal/config"
	"github.com/t-yamaguchi/recite/internal/database"
	"github.com/t-yamaguchi/recite/internal/review"
	"github.com/t-yamaguchi/recite/internal/scheduling"
	"github.com/t-yamaguchi/recite/internal/scorer"
	"github.com/t-yamaguchi/recite/internal/scorer/openai"
	"github.com/t-yamaguchi/recite/internal/sentence"
	"github.com/t-yamaguchi/recite/internal/session"
	"github.com/t-yamaguchi/recite/internal/statistics"
	"github.com/t-yamaguchi/recite/internal/user"
)

// Runtime holds the command line tool's shared dependencies, built once
// from config and torn down through the App's shutdown hooks.
type Runtime struct {
	Config *config.Config
	DB     *sqlx.DB

	Users     user.UserRepository
	Sentences sentence.SentenceRepository
	Sessions  session.SessionRepository

	Reviews    *review.Service
	Statistics *statistics.Collector
}

// NewRuntime opens the database and wires the repositories and services.
// The database connection is closed through app's shutdown hooks.
func NewRuntime(app *App, cfg *config.Config) (*Runtime, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})

	sentences := sentence.NewDBSentenceRepository(db)
	sessions := session.NewDBSessionRepository(db)

	return &Runtime{
		Config:    cfg,
		DB:        db,
		Users:     user.NewDBUserRepository(db),
		Sentences: sentences,
		Sessions:  sessions,
		Reviews: review.NewService(
			db,
			sentences,
			sessions,
			scheduling.NewScheduler(),
			func() time.Time { return time.Now().UTC() },
		),
		Statistics: statistics.NewCollector(sentences, sessions),
	}, nil
}

// NewScorer builds the OpenAI-backed scorer from config. It fails without
// an API key rather than returning a scorer that cannot authenticate.
func (r *Runtime) NewScorer(app *App) (scorer.Scorer, error) {
	if r.Config.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	client := openai.NewClient(
		r.Config.OpenAI.APIKey,
		r.Config.OpenAI.Model,
		r.Config.Scoring.RetryAttempts,
	)
	app.AddShutdownHook(func(ctx context.Context) error {
		return client.Close()
	})
	return client, nil
}
