package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(nil, slog.LevelDebug))
		})
	}
}

func TestNewUserCommand(t *testing.T) {
	cmd := newUserCommand()

	assert.Equal(t, "user", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, want := range []string{"create", "list", "delete", "language"} {
		assert.True(t, subcommands[want], "missing subcommand %s", want)
	}
}

func TestNewSentenceCommand(t *testing.T) {
	cmd := newSentenceCommand()

	assert.Equal(t, "sentence", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	for _, want := range []string{"add", "list", "delete", "categories"} {
		assert.True(t, subcommands[want], "missing subcommand %s", want)
	}
}

func TestNewReviewCommand(t *testing.T) {
	cmd := newReviewCommand()

	assert.Equal(t, "review", cmd.Name())
	assert.NotNil(t, cmd.RunE)
}

func TestNewDueCommand(t *testing.T) {
	cmd := newDueCommand()

	assert.Equal(t, "due", cmd.Name())
	assert.NotNil(t, cmd.RunE)
}

func TestNewStatsCommand(t *testing.T) {
	cmd := newStatsCommand()

	assert.Equal(t, "stats", cmd.Use)
	assert.True(t, cmd.HasSubCommands())

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}
	assert.True(t, subcommands["show"])
	assert.True(t, subcommands["report"])
}

func TestNewMigrateCommand(t *testing.T) {
	cmd := newMigrateCommand()

	assert.Equal(t, "migrate", cmd.Use)
	assert.Equal(t, "Apply the embedded database schema", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}
