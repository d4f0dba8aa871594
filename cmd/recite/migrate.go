package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/t-yamaguchi/recite/internal/bootstrap"
	"github.com/t-yamaguchi/recite/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				entries, err := schemas.Migrations.ReadDir("migrations")
				if err != nil {
					return fmt.Errorf("read migrations: %w", err)
				}
				sort.Slice(entries, func(i, j int) bool {
					return entries[i].Name() < entries[j].Name()
				})

				for _, entry := range entries {
					content, err := schemas.Migrations.ReadFile("migrations/" + entry.Name())
					if err != nil {
						return fmt.Errorf("read migration %s: %w", entry.Name(), err)
					}
					if _, err := runtime.DB.ExecContext(ctx, string(content)); err != nil {
						return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
					}
					fmt.Printf("Applied %s\n", entry.Name())
				}
				return nil
			})
		},
	}
}
