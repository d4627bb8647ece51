package organize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"sortd/internal/classify"
	"sortd/internal/fileutil"
	"sortd/internal/logging"
	"sortd/internal/scan"
)

// maxCollisionAttempts bounds the numbered-suffix probing when a file of
// the same name already exists at the destination.
const maxCollisionAttempts = 100

func (e *Engine) runMoves(ctx context.Context, entries []scan.Entry, mode classify.Mode, summary *Summary, opts Options, logger *slog.Logger) error {
	created := make(map[string]struct{})

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		folder, err := e.classifier.Folder(entry, mode)
		if err != nil {
			e.record(summary, logger, Record{
				Path:    entry.Path,
				Action:  ActionMove,
				Outcome: OutcomeFailed,
				Err:     Wrap(ErrEntryRead, string(mode), "classify", entry.Name, err),
			})
			continue
		}
		destDir := filepath.Join(summary.Target, folder)

		if opts.DryRun {
			e.record(summary, logger, Record{
				Path:    entry.Path,
				Action:  ActionMove,
				Dest:    filepath.Join(destDir, entry.Name),
				Outcome: OutcomePlanned,
				Note:    fmt.Sprintf("would move (%s)", humanize.Bytes(uint64(entry.Size))),
			})
			continue
		}

		if _, ok := created[destDir]; !ok {
			if err := os.MkdirAll(destDir, 0o755); err != nil {
				e.record(summary, logger, Record{
					Path:    entry.Path,
					Action:  ActionMove,
					Dest:    destDir,
					Outcome: OutcomeFailed,
					Err:     Wrap(ErrEntryWrite, string(mode), "create folder", destDir, err),
				})
				continue
			}
			created[destDir] = struct{}{}
		}

		dest, renamed, err := destinationFor(destDir, entry.Name)
		if err != nil {
			e.record(summary, logger, Record{
				Path:    entry.Path,
				Action:  ActionMove,
				Dest:    destDir,
				Outcome: OutcomeFailed,
				Err:     Wrap(ErrEntryWrite, string(mode), "allocate destination", entry.Name, err),
			})
			continue
		}

		if err := fileutil.MoveFile(entry.Path, dest); err != nil {
			e.record(summary, logger, Record{
				Path:    entry.Path,
				Action:  ActionMove,
				Dest:    dest,
				Outcome: OutcomeFailed,
				Err:     Wrap(ErrEntryWrite, string(mode), "move", entry.Name, err),
			})
			continue
		}

		rec := Record{Path: entry.Path, Action: ActionMove, Dest: dest, Outcome: OutcomeSuccess}
		if renamed {
			rec.Note = "renamed to avoid collision"
		}
		e.record(summary, logger, rec)
	}

	if !opts.DryRun {
		e.removeEmptyFolders(created, logger)
	}
	return nil
}

// destinationFor returns a free path for name inside dir, appending a
// numbered suffix ("report (1).pdf") when the plain name is taken. The
// probing is bounded; exhausting it is a per-entry failure.
func destinationFor(dir, name string) (string, bool, error) {
	plain := filepath.Join(dir, name)
	free, err := pathFree(plain)
	if err != nil {
		return "", false, err
	}
	if free {
		return plain, false, nil
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for attempt := 1; attempt <= maxCollisionAttempts; attempt++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, attempt, ext))
		free, err := pathFree(candidate)
		if err != nil {
			return "", false, err
		}
		if free {
			return candidate, true, nil
		}
	}
	return "", false, fmt.Errorf("exhausted %d name candidates for %s in %s", maxCollisionAttempts, name, dir)
}

func pathFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	return false, err
}

// removeEmptyFolders drops destination folders created this run that ended
// up empty because every move into them failed.
func (e *Engine) removeEmptyFolders(created map[string]struct{}, logger *slog.Logger) {
	for dir := range created {
		if !scan.IsCategoryFolder(filepath.Base(dir)) {
			continue
		}
		children, err := os.ReadDir(dir)
		if err != nil || len(children) > 0 {
			continue
		}
		if err := os.Remove(dir); err == nil {
			logger.Debug("removed empty folder", logging.String(logging.FieldPath, dir))
		}
	}
}
