package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/t-yamaguchi/recite/internal/bootstrap"
	"github.com/t-yamaguchi/recite/internal/cli"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review <user id>",
		Short: "Interactively review the sentences that are due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				answerScorer, err := runtime.NewScorer(app)
				if err != nil {
					return err
				}

				languages, err := runtime.Users.FindTargetLanguages(ctx, userID)
				if err != nil {
					return err
				}
				codes := make([]string, 0, len(languages))
				for _, language := range languages {
					codes = append(codes, language.LanguageCode)
				}

				sessionCLI, err := cli.NewReviewSessionCLI(ctx, runtime.Reviews, answerScorer, userID, codes,
					runtime.Config.Scoring.SuccessThreshold)
				if err != nil {
					return err
				}

				fmt.Printf("%d sentences due. Type 'quit' to exit.\n", sessionCLI.RemainingCount())
				return sessionCLI.Run(ctx, sessionCLI)
			})
		},
	}
}

func newDueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due <user id>",
		Short: "List the sentences due for review, soonest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				due, err := runtime.Reviews.DueSentences(ctx, userID)
				if err != nil {
					return err
				}
				if len(due) == 0 {
					fmt.Println("Nothing is due. Come back later!")
					return nil
				}
				for _, s := range due {
					fmt.Printf("%d\t%s\t(due since %s)\n", s.ID, s.OriginalText, s.NextReview.Format("2006-01-02"))
				}
				return nil
			})
		},
	}
}
