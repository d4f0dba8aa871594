package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/t-yamaguchi/recite/internal/bootstrap"
	"github.com/t-yamaguchi/recite/internal/user"
)

func newUserCommand() *cobra.Command {
	userCommand := &cobra.Command{
		Use:   "user",
		Short: "Manage learners and their target languages",
	}

	userCommand.AddCommand(
		newUserCreateCommand(),
		newUserListCommand(),
		newUserDeleteCommand(),
		newUserLanguageCommand(),
	)
	return userCommand
}

func newUserCreateCommand() *cobra.Command {
	var nativeLanguage string
	command := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a learner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				created := &user.User{
					Username:       args[0],
					NativeLanguage: nativeLanguage,
					CreatedAt:      time.Now().UTC(),
				}
				if err := runtime.Users.Create(ctx, created); err != nil {
					return err
				}
				fmt.Printf("Created user %q (id %d)\n", created.Username, created.ID)
				return nil
			})
		},
	}
	command.Flags().StringVar(&nativeLanguage, "native-language", "en", "The learner's native language code")
	return command
}

func newUserListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List learners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				users, err := runtime.Users.FindAll(ctx)
				if err != nil {
					return err
				}
				for _, u := range users {
					languages, err := runtime.Users.FindTargetLanguages(ctx, u.ID)
					if err != nil {
						return err
					}
					codes := make([]string, 0, len(languages))
					for _, language := range languages {
						codes = append(codes, language.LanguageCode)
					}
					fmt.Printf("%d\t%s\t(native %s, learning %v)\n", u.ID, u.Username, u.NativeLanguage, codes)
				}
				return nil
			})
		},
	}
}

func newUserDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user id>",
		Short: "Delete a learner and everything they own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				if err := runtime.Users.Delete(ctx, userID); err != nil {
					return err
				}
				fmt.Printf("Deleted user %d\n", userID)
				return nil
			})
		},
	}
}

func newUserLanguageCommand() *cobra.Command {
	languageCommand := &cobra.Command{
		Use:   "language",
		Short: "Manage a learner's target languages",
	}

	languageCommand.AddCommand(
		&cobra.Command{
			Use:   "add <user id> <language code>",
			Short: "Add a target language",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid user id %q: %w", args[0], err)
				}
				return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
					added, err := runtime.Users.AddTargetLanguage(ctx, userID, args[1])
					if err != nil {
						return err
					}
					fmt.Printf("User %d now learns %s\n", userID, added.LanguageCode)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list <user id>",
			Short: "List a learner's target languages",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid user id %q: %w", args[0], err)
				}
				return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
					languages, err := runtime.Users.FindTargetLanguages(ctx, userID)
					if err != nil {
						return err
					}
					for _, language := range languages {
						fmt.Println(language.LanguageCode)
					}
					return nil
				})
			},
		},
	)
	return languageCommand
}
