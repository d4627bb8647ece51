// Package organize walks a target directory, classifies its files, and
// performs the moves or deletions the selected mode calls for. One bad
// entry never stops the rest of the run.
package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"sortd/internal/calendar"
	"sortd/internal/classify"
	"sortd/internal/config"
	"sortd/internal/exifdate"
	"sortd/internal/fingerprint"
	"sortd/internal/logging"
	"sortd/internal/scan"
)

const (
	lockFileName = ".sortd.lock"
	logFileName  = "sortd.log"
)

// Options adjust a single run.
type Options struct {
	// DryRun classifies everything but performs no mutation; every
	// would-be mutation is recorded as planned.
	DryRun bool
}

// Engine coordinates scanning, classification, and mutation for one target
// directory at a time.
type Engine struct {
	cfg        *config.Config
	logger     *slog.Logger
	classifier *classify.Classifier
	hasher     fingerprint.Hasher
	workers    int
}

// New constructs an engine from validated configuration. The logger is
// required; the engine never falls back to a package global.
func New(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, Wrap(ErrStartup, "", "configure", "configuration unavailable", nil)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	sizes := classify.NewSizeCategories(cfg.Sizes.LightMaxMB, cfg.Sizes.MediumMaxMB)
	if err := sizes.Validate(); err != nil {
		return nil, Wrap(ErrStartup, "", "configure sizes", "invalid size partition", err)
	}
	system, err := calendar.ForName(cfg.Date.Calendar)
	if err != nil {
		return nil, Wrap(ErrStartup, "", "configure calendar", "invalid calendar system", err)
	}
	hasher, err := fingerprint.ForName(cfg.Duplicates.Hash)
	if err != nil {
		return nil, Wrap(ErrStartup, "", "configure hash", "invalid fingerprint algorithm", err)
	}

	classifier := &classify.Classifier{Sizes: sizes, Calendar: system}
	if cfg.Date.UseEXIF {
		classifier.CaptureDate = exifdate.CaptureDate
	}

	return &Engine{
		cfg:        cfg,
		logger:     logger.With(logging.String(logging.FieldComponent, "engine")),
		classifier: classifier,
		hasher:     hasher,
		workers:    cfg.Duplicates.Workers,
	}, nil
}

// Run executes one organization pass over target. It returns a summary even
// when individual entries fail; the error return is reserved for conditions
// that prevent the run from starting (or an interrupting context).
func (e *Engine) Run(ctx context.Context, target string, mode classify.Mode, opts Options) (*Summary, error) {
	resolved, err := e.checkTarget(target)
	if err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(resolved, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrStartup, string(mode), "acquire lock", "failed to create lock file", err)
	}
	if !locked {
		return nil, Wrap(ErrStartup, string(mode), "acquire lock", fmt.Sprintf("another run is organizing %s", resolved), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	summary := &Summary{
		RunID:     uuid.NewString(),
		Target:    resolved,
		Mode:      mode,
		DryRun:    opts.DryRun,
		StartedAt: time.Now().UTC(),
	}
	logger := e.logger.With(
		logging.String(logging.FieldRunID, summary.RunID),
		logging.String(logging.FieldMode, string(mode)),
	)
	logger.Info("starting run",
		logging.String("target", resolved),
		logging.Bool("dry_run", opts.DryRun),
	)

	entries, err := scan.Dir(resolved, scan.Options{SkipNames: e.skipNames(resolved)})
	if err != nil {
		return nil, Wrap(ErrStartup, string(mode), "scan", "failed to list target directory", err)
	}
	summary.Scanned = len(entries)
	logger.Info("scan completed", logging.Int("entries", len(entries)))

	switch mode {
	case classify.ModeDuplicates:
		err = e.runDuplicates(ctx, entries, summary, opts, logger)
	case classify.ModeExtension, classify.ModeSize, classify.ModeDate:
		err = e.runMoves(ctx, entries, mode, summary, opts, logger)
	default:
		return nil, Wrap(ErrStartup, string(mode), "select mode", "unknown organization mode", nil)
	}

	summary.FinishedAt = time.Now().UTC()
	counts := summary.Counts()
	logger.Info("run completed",
		logging.Int("moved", counts.Moved),
		logging.Int("deleted", counts.Deleted),
		logging.Int("skipped", counts.Skipped),
		logging.Int("failed", counts.Failed),
		logging.Int("planned", counts.Planned),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, err
}

func (e *Engine) checkTarget(target string) (string, error) {
	resolved, err := config.ExpandPath(target)
	if err != nil {
		return "", Wrap(ErrStartup, "", "resolve target", "could not resolve path", err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", Wrap(ErrStartup, "", "check target", fmt.Sprintf("target %s does not exist", resolved), err)
	}
	if !info.IsDir() {
		return "", Wrap(ErrStartup, "", "check target", fmt.Sprintf("target %s is not a directory", resolved), nil)
	}
	if _, err := os.ReadDir(resolved); err != nil {
		return "", Wrap(ErrStartup, "", "check target", fmt.Sprintf("target %s is not readable", resolved), err)
	}
	return resolved, nil
}

// skipNames lists directory children the scanner must ignore: the lock
// file, the run log if it lives in the target, and the history database.
func (e *Engine) skipNames(target string) []string {
	names := []string{lockFileName, logFileName}
	if filepath.Dir(e.cfg.History.Path) == target {
		names = append(names, filepath.Base(e.cfg.History.Path))
	}
	return names
}

func (e *Engine) record(summary *Summary, logger *slog.Logger, rec Record) {
	summary.Records = append(summary.Records, rec)
	attrs := []logging.Attr{
		logging.String(logging.FieldPath, rec.Path),
		logging.String("action", string(rec.Action)),
		logging.String("outcome", string(rec.Outcome)),
	}
	if rec.Dest != "" {
		attrs = append(attrs, logging.String(logging.FieldDest, rec.Dest))
	}
	if rec.Note != "" {
		attrs = append(attrs, logging.String("note", rec.Note))
	}
	if rec.Err != nil {
		logger.LogAttrs(context.Background(), slog.LevelWarn, "entry not organized", append(attrs, logging.Error(rec.Err))...)
		return
	}
	logger.LogAttrs(context.Background(), slog.LevelInfo, "entry processed", attrs...)
}
