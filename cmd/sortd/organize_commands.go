package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"sortd/internal/classify"
	"sortd/internal/config"
	"sortd/internal/history"
	"sortd/internal/logging"
	"sortd/internal/organize"
)

func newModeCommand(cctx *commandContext, mode classify.Mode, use, short string) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cctx, cmd, args, mode, dryRun, "")
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would change without touching any file")
	return cmd
}

func newDateCommand(cctx *commandContext) *cobra.Command {
	var dryRun bool
	var calendarFlag string
	cmd := &cobra.Command{
		Use:   "date [path]",
		Short: "Move files into year-month folders by last modification date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cctx, cmd, args, classify.ModeDate, dryRun, calendarFlag)
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would change without touching any file")
	cmd.Flags().StringVar(&calendarFlag, "calendar", "", "Calendar system for folder labels (gregorian or jalali)")
	return cmd
}

func newDuplicatesCommand(cctx *commandContext) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "duplicates [path]",
		Short: "Delete duplicate files, keeping one copy of each",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cctx, cmd, args, classify.ModeDuplicates, dryRun, "")
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report what would be deleted without touching any file")
	return cmd
}

func runOrganize(cctx *commandContext, cmd *cobra.Command, args []string, mode classify.Mode, dryRun bool, calendarOverride string) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	if calendarOverride != "" {
		cfg.Date.Calendar = strings.ToLower(strings.TrimSpace(calendarOverride))
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, closeSink, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeSink()
	}()

	engine, err := organize.New(cfg, logger)
	if err != nil {
		return err
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	summary, err := engine.Run(signalCtx, target, mode, organize.Options{DryRun: dryRun})
	if err != nil {
		return err
	}

	if err := persistRun(context.Background(), cfg, summary); err != nil {
		// A history write failure never fails a completed run.
		logger.Warn("failed to persist run history", logging.Error(err))
	}

	renderSummary(cmd.OutOrStdout(), summary, cfg.Logging.Dir)
	return nil
}

func persistRun(ctx context.Context, cfg *config.Config, summary *organize.Summary) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	counts := summary.Counts()
	run := history.Run{
		ID:         summary.RunID,
		Target:     summary.Target,
		Mode:       string(summary.Mode),
		DryRun:     summary.DryRun,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Moved:      counts.Moved,
		Deleted:    counts.Deleted,
		Skipped:    counts.Skipped,
		Failed:     counts.Failed,
	}

	ops := make([]history.Operation, 0, len(summary.Records))
	for _, rec := range summary.Records {
		op := history.Operation{
			Path:    rec.Path,
			Action:  string(rec.Action),
			Dest:    rec.Dest,
			Outcome: string(rec.Outcome),
			Note:    rec.Note,
		}
		if rec.Err != nil {
			op.Error = rec.Err.Error()
		}
		ops = append(ops, op)
	}

	return store.RecordRun(ctx, run, ops)
}

func targetLabel(summary *organize.Summary) string {
	return fmt.Sprintf("%s (%s mode)", summary.Target, summary.Mode)
}
