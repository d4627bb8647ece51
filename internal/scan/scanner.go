// Package scan enumerates the direct children of a target directory and
// produces immutable metadata snapshots for the organize engine.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

// Entry is a snapshot of one regular file taken at scan time. The engine
// may move or delete the underlying file afterwards, so callers must not
// re-stat an entry to make decisions within the same run.
type Entry struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// categoryFolder matches destination folders created by earlier runs:
// "<key>_files" for extension and size modes, "YYYY-MM" for date mode.
var categoryFolder = regexp.MustCompile(`(_files$)|(^\d{4}-\d{2}$)`)

// IsCategoryFolder reports whether name matches a destination-folder
// naming pattern created by any organize mode.
func IsCategoryFolder(name string) bool {
	return categoryFolder.MatchString(name)
}

// Options control which directory children are skipped.
type Options struct {
	// SkipNames lists exact base names to exclude, such as the run log
	// and the lock file.
	SkipNames []string
}

// Dir lists the regular files directly under target, sorted by name. The
// sort order is load-bearing: it defines duplicate-survivor selection and
// keeps re-runs deterministic. Subdirectories are never entered, so
// destination folders from earlier runs are left alone.
func Dir(target string, opts Options) ([]Entry, error) {
	dirEntries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", target, err)
	}

	skip := make(map[string]struct{}, len(opts.SkipNames))
	for _, name := range opts.SkipNames {
		skip[name] = struct{}{}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		name := de.Name()
		if _, skipped := skip[name]; skipped {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Vanished between ReadDir and stat; it cannot be organized.
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(target, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}
