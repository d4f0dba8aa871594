package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/t-yamaguchi/recite/internal/bootstrap"
	"github.com/t-yamaguchi/recite/internal/pdf"
	"github.com/t-yamaguchi/recite/internal/statistics"
)

func newStatsCommand() *cobra.Command {
	statsCommand := &cobra.Command{
		Use:   "stats",
		Short: "Learning statistics",
	}

	statsCommand.AddCommand(
		newStatsShowCommand(),
		newStatsReportCommand(),
	)
	return statsCommand
}

func newStatsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <user id>",
		Short: "Show a learner's aggregate numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				stats, err := runtime.Statistics.Collect(ctx, userID, time.Now().UTC())
				if err != nil {
					return err
				}
				fmt.Printf("Sentences: %d\n", stats.TotalSentences)
				fmt.Printf("Sessions: %d\n", stats.TotalSessions)
				fmt.Printf("Average score: %.2f\n", stats.AverageScore)
				fmt.Printf("Due now: %d\n", stats.DueCount)
				return nil
			})
		},
	}
}

func newStatsReportCommand() *cobra.Command {
	var toPDF bool
	command := &cobra.Command{
		Use:   "report <user id>",
		Short: "Write a markdown learning report, optionally as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withRuntime(cmd.Context(), func(ctx context.Context, app *bootstrap.App, runtime *bootstrap.Runtime) error {
				now := time.Now().UTC()
				report, err := runtime.Statistics.CollectReport(ctx, userID, now)
				if err != nil {
					return err
				}

				name := fmt.Sprintf("learning-report-%d-%s", userID, now.Format("2006-01-02"))
				markdownPath, err := pdf.WriteReport(
					runtime.Config.Outputs.ReportDirectory,
					name,
					statistics.RenderMarkdown(report),
				)
				if err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", markdownPath)

				if toPDF {
					pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath)
					if err != nil {
						return err
					}
					fmt.Printf("Wrote %s\n", pdfPath)
				}
				return nil
			})
		},
	}
	command.Flags().BoolVar(&toPDF, "pdf", false, "Also render the report as PDF")
	return command
}
