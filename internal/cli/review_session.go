// Package cli implements the interactive review session.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"github.com/t-yamaguchi/recite/internal/review"
	"github.com/t-yamaguchi/recite/internal/scheduling"
	"github.com/t-yamaguchi/recite/internal/scorer"
	"github.com/t-yamaguchi/recite/internal/sentence"
)

// ReviewSessionCLI walks a user through their due sentences one by one:
// it shows a sentence, collects a translation per target language, has
// the scorer grade them and submits the review.
type ReviewSessionCLI struct {
	reviews          *review.Service
	answerScorer     scorer.Scorer
	userID           int64
	targetLanguages  []string
	successThreshold float64
	queue            []sentence.Sentence
	stdinReader      *bufio.Reader
	stdoutWriter     io.Writer
	bold             *color.Color
	italic           *color.Color
}

// NewReviewSessionCLI loads the user's due sentences and prepares a
// session over them. A zero successThreshold falls back to the engine's
// default.
func NewReviewSessionCLI(
	ctx context.Context,
	reviews *review.Service,
	answerScorer scorer.Scorer,
	userID int64,
	targetLanguages []string,
	successThreshold float64,
) (*ReviewSessionCLI, error) {
	if len(targetLanguages) == 0 {
		return nil, fmt.Errorf("no target languages to practice")
	}
	if successThreshold == 0 {
		successThreshold = scheduling.SuccessThreshold
	}

	due, err := reviews.DueSentences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reviews.DueSentences() > %w", err)
	}

	return &ReviewSessionCLI{
		reviews:          reviews,
		answerScorer:     answerScorer,
		userID:           userID,
		targetLanguages:  targetLanguages,
		successThreshold: successThreshold,
		queue:            due,
		stdinReader:      bufio.NewReader(os.Stdin),
		stdoutWriter:     os.Stdout,
		bold:             color.New(color.Bold),
		italic:           color.New(color.Italic),
	}, nil
}

// RemainingCount returns the number of sentences left in the session.
func (cli *ReviewSessionCLI) RemainingCount() int {
	return len(cli.queue)
}

type Session interface {
	Session(ctx context.Context) error
}

var errEnd = errors.New("end")

// Run drives the session loop until the queue is exhausted, the user
// quits, or an OS interrupt arrives.
func (cli *ReviewSessionCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	// Buffered so the session goroutine can finish its send and exit even
	// when the interrupt branch below wins.
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

func (cli *ReviewSessionCLI) Session(ctx context.Context) error {
	current := cli.nextSentence()
	if current == nil {
		fmt.Fprintln(cli.stdoutWriter, "No more sentences due for review!")
		return errEnd
	}

	fmt.Fprintf(cli.stdoutWriter, "\n[%d left] ", len(cli.queue))
	_, _ = cli.bold.Fprintln(cli.stdoutWriter, current.OriginalText)
	if current.Category != nil {
		_, _ = cli.italic.Fprintf(cli.stdoutWriter, "(%s)\n", *current.Category)
	}

	translations := make(map[string]string, len(cli.targetLanguages))
	for _, language := range cli.targetLanguages {
		fmt.Fprintf(cli.stdoutWriter, "Translate into %s: ", language)
		answerInput, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(cli.stdoutWriter, "\nReview session ended.")
				return errEnd
			}
			return fmt.Errorf("error reading input: %w", err)
		}
		answer := strings.TrimSpace(answerInput)

		if answer == "quit" || answer == "exit" {
			fmt.Fprintln(cli.stdoutWriter, "Review session ended.")
			return errEnd
		}
		translations[language] = answer
	}

	input, err := json.Marshal(translations)
	if err != nil {
		return fmt.Errorf("json.Marshal(translations) > %w", err)
	}

	if allEmpty(translations) {
		if _, err := cli.reviews.RecordUnscored(ctx, &cli.userID, current.ID, input); err != nil {
			return fmt.Errorf("reviews.RecordUnscored() > %w", err)
		}
		fmt.Fprintln(cli.stdoutWriter, "Skipped; the sentence stays due.")
		cli.removeCurrentSentence()
		return nil
	}

	result, err := cli.answerScorer.ScoreTranslations(ctx, scorer.ScoreTranslationsRequest{
		OriginalText: current.OriginalText,
		LanguageCode: current.LanguageCode,
		Translations: translations,
	})
	if err != nil {
		return fmt.Errorf("answerScorer.ScoreTranslations() > %w", err)
	}

	outcome, err := scheduling.NewOutcomeWithThreshold(result.CombinedScore, cli.successThreshold)
	if err != nil {
		return fmt.Errorf("scheduling.NewOutcomeWithThreshold(%v) > %w", result.CombinedScore, err)
	}

	updated, err := cli.reviews.SubmitReview(ctx, &cli.userID, current.ID, input, outcome)
	if err != nil {
		return fmt.Errorf("reviews.SubmitReview() > %w", err)
	}

	for _, language := range cli.targetLanguages {
		fmt.Fprintf(cli.stdoutWriter, "%s: %.2f\n", language, result.Scores[language])
	}

	if outcome.IsSuccess {
		fmt.Fprint(cli.stdoutWriter, "✅ ")
		color.New(color.FgGreen).Fprintf(cli.stdoutWriter, "Remembered with score %.2f.\n", outcome.Score)
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		color.New(color.FgRed).Fprintf(cli.stdoutWriter, "Not yet, score %.2f. It comes back tomorrow.\n", outcome.Score)
	}
	fmt.Fprintf(cli.stdoutWriter, "Next review on %s (%d reviews so far)\n",
		updated.NextReview.Format("2006-01-02"),
		updated.ReviewCount,
	)

	cli.removeCurrentSentence()
	return nil
}

func (cli *ReviewSessionCLI) nextSentence() *sentence.Sentence {
	if len(cli.queue) == 0 {
		return nil
	}
	return &cli.queue[0]
}

func (cli *ReviewSessionCLI) removeCurrentSentence() {
	if len(cli.queue) > 0 {
		cli.queue = cli.queue[1:]
	}
}

func allEmpty(translations map[string]string) bool {
	for _, answer := range translations {
		if answer != "" {
			return false
		}
	}
	return true
}
