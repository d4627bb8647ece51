package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"sortd/internal/history"
)

func newHistoryCommand(cctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past runs, or the per-file operations of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return renderRunOperations(cmd, store, args[0])
			}
			return renderRecentRuns(cmd, store, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func renderRecentRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		mode := run.Mode
		if run.DryRun {
			mode += " (dry)"
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			mode,
			run.Target,
			strconv.Itoa(run.Moved),
			strconv.Itoa(run.Deleted),
			strconv.Itoa(run.Failed),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Run", "Started", "Mode", "Target", "Moved", "Deleted", "Failed"},
		rows, 4, 5, 6,
	))
	return nil
}

func renderRunOperations(cmd *cobra.Command, store *history.Store, runID string) error {
	ops, err := store.RunOperations(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No operations recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		detail := op.Dest
		if op.Error != "" {
			detail = op.Error
		} else if detail == "" {
			detail = op.Note
		}
		rows = append(rows, []string{op.Path, op.Action, op.Outcome, detail})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Path", "Action", "Outcome", "Detail"},
		rows,
	))
	return nil
}
