package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordpair/internal/app"
	"github.com/abhisek/wordpair/internal/journal"
	"github.com/abhisek/wordpair/internal/quiz"
)

// runApp builds the session dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, closeLog, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	learningTime, _ := cmd.Flags().GetDuration("learning-time")
	cfg := quiz.DefaultConfig()
	cfg.LearningTime = learningTime
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := app.Options{Config: cfg, Logger: logger}

	// History is optional; the quiz works without it.
	j, err := journal.Open(ctx)
	if err != nil {
		logger.Warn("attempt journal unavailable", "err", err)
	} else {
		defer j.Close()
		opts.Journal = j
	}

	return app.Run(ctx, opts)
}

// newLogger returns a debug logger writing to --log-file, or a discard
// logger when the flag is empty. The TUI owns stdout and stderr.
func newLogger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), f.Close, nil
}
