package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/t-yamaguchi/recite/internal/bootstrap"
	"github.com/t-yamaguchi/recite/internal/sentence"
)

func newSentenceCommand() *cobra.Command {
	sentenceCommand := &cobra.Command{
		Use:   "sentence",
		Short: "Manage the sentences a learner practices",
	}

	sentenceCommand.AddCommand(
		newSentenceAddCommand(),
		newSentenceListCommand(),
		newSentenceDeleteCommand(),
		newSentenceCategoriesCommand(),
	)
	return sentenceCommand
}

func newSentenceAddCommand() *cobra.Command {
	var languageCode, category string
	command := &cobra.Command{
		Use:   "add <user id> <text> [text...]",
		Short: "Add sentences, due for review immediately",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				var categoryPtr *string
				if category != "" {
					categoryPtr = &category
				}
				if len(args) == 2 {
					created, err := runtime.Reviews.AddSentence(ctx, userID, args[1], languageCode, categoryPtr)
					if err != nil {
						return err
					}
					fmt.Printf("Added sentence %d, due for review now\n", created.ID)
					return nil
				}
				created, err := runtime.Reviews.AddSentences(ctx, userID, args[1:], languageCode, categoryPtr)
				if err != nil {
					return err
				}
				fmt.Printf("Added %d sentences, due for review now\n", len(created))
				return nil
			})
		},
	}
	command.Flags().StringVar(&languageCode, "language", "en", "The sentence's language code")
	command.Flags().StringVar(&category, "category", "", "Optional category, e.g. a textbook chapter")
	return command
}

func newSentenceListCommand() *cobra.Command {
	var category string
	command := &cobra.Command{
		Use:   "list <user id>",
		Short: "List a learner's sentences with their review schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				var sentences []sentence.Sentence
				if category != "" {
					sentences, err = runtime.Sentences.FindByUserAndCategory(ctx, userID, category)
				} else {
					sentences, err = runtime.Sentences.FindByUser(ctx, userID)
				}
				if err != nil {
					return err
				}
				for _, s := range sentences {
					fmt.Printf("%d\t%s\tscore %.2f, %d reviews, next on %s\n",
						s.ID, s.OriginalText, s.Score, s.ReviewCount, s.NextReview.Format("2006-01-02"))
				}
				return nil
			})
		},
	}
	command.Flags().StringVar(&category, "category", "", "Only list sentences in this category")
	return command
}

func newSentenceDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sentence id>",
		Short: "Delete a sentence and its session records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sentenceID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sentence id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				if err := runtime.Sentences.Delete(ctx, sentenceID); err != nil {
					return err
				}
				fmt.Printf("Deleted sentence %d\n", sentenceID)
				return nil
			})
		},
	}
}

func newSentenceCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories <user id>",
		Short: "List the categories a learner has used",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				categories, err := runtime.Sentences.FindCategories(ctx, userID)
				if err != nil {
					return err
				}
				for _, category := range categories {
					fmt.Println(category)
				}
				return nil
			})
		},
	}
}
