package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"sortd/internal/fingerprint"
	"sortd/internal/logging"
	"sortd/internal/scan"
)

// runDuplicates deletes every member of a content group except its
// deterministically chosen survivor. Fingerprinting for the whole entry set
// completes before the first deletion: group membership is only known once
// every candidate is digested.
func (e *Engine) runDuplicates(ctx context.Context, entries []scan.Entry, summary *Summary, opts Options, logger *slog.Logger) error {
	result := fingerprint.GroupDuplicates(ctx, entries, e.hasher, e.workers)
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, failure := range result.Failures {
		e.record(summary, logger, Record{
			Path:    failure.Entry.Path,
			Action:  ActionKeep,
			Outcome: OutcomeFailed,
			Err:     Wrap(ErrEntryRead, "duplicates", "fingerprint", failure.Entry.Name, failure.Err),
		})
	}

	logger.Info("fingerprinting completed",
		logging.Int("groups", len(result.Groups)),
		logging.Int("unreadable", len(result.Failures)),
		logging.String("hash", e.hasher.Name()),
	)

	for _, group := range result.Groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		survivor := group.Entries[0]
		e.record(summary, logger, Record{
			Path:    survivor.Path,
			Action:  ActionKeep,
			Outcome: OutcomeSuccess,
			Note:    fmt.Sprintf("survivor of %d identical files", len(group.Entries)),
		})

		for _, dup := range group.Entries[1:] {
			if opts.DryRun {
				e.record(summary, logger, Record{
					Path:    dup.Path,
					Action:  ActionDelete,
					Outcome: OutcomePlanned,
					Note:    fmt.Sprintf("duplicate of %s", survivor.Path),
				})
				continue
			}
			e.deleteDuplicate(summary, logger, dup, group, survivor.Path)
		}
	}
	return nil
}

// deleteDuplicate removes one confirmed duplicate, re-verifying the file
// immediately before deletion. A file that changed since classification is
// kept with a warning: the snapshot no longer describes it.
func (e *Engine) deleteDuplicate(summary *Summary, logger *slog.Logger, dup scan.Entry, group fingerprint.Group, survivorPath string) {
	info, err := os.Lstat(dup.Path)
	if err != nil {
		e.record(summary, logger, Record{
			Path:    dup.Path,
			Action:  ActionDelete,
			Outcome: OutcomeSkipped,
			Note:    "vanished since classification",
		})
		return
	}
	if info.Size() != group.Size {
		e.record(summary, logger, Record{
			Path:    dup.Path,
			Action:  ActionDelete,
			Outcome: OutcomeSkipped,
			Note:    "size changed since classification, keeping file",
		})
		return
	}
	digest, err := e.hasher.Sum(dup.Path)
	if err != nil {
		e.record(summary, logger, Record{
			Path:    dup.Path,
			Action:  ActionDelete,
			Outcome: OutcomeFailed,
			Err:     Wrap(ErrEntryRead, "duplicates", "verify", dup.Name, err),
		})
		return
	}
	if digest != group.Digest {
		e.record(summary, logger, Record{
			Path:    dup.Path,
			Action:  ActionDelete,
			Outcome: OutcomeSkipped,
			Note:    "content changed since classification, keeping file",
		})
		return
	}

	if err := os.Remove(dup.Path); err != nil {
		e.record(summary, logger, Record{
			Path:    dup.Path,
			Action:  ActionDelete,
			Outcome: OutcomeFailed,
			Err:     Wrap(ErrEntryWrite, "duplicates", "delete", dup.Name, err),
		})
		return
	}
	e.record(summary, logger, Record{
		Path:    dup.Path,
		Action:  ActionDelete,
		Outcome: OutcomeSuccess,
		Note:    fmt.Sprintf("duplicate of %s", survivorPath),
	})
}
