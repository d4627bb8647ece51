// Package classify computes destination folder names for discovered files.
// It is side-effect free: nothing here touches the filesystem beyond the
// optional capture-date hook supplied by the caller.
package classify

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"sortd/internal/calendar"
	"sortd/internal/scan"
)

// Mode selects the organization criterion.
type Mode string

const (
	ModeExtension  Mode = "extension"
	ModeSize       Mode = "size"
	ModeDate       Mode = "date"
	ModeDuplicates Mode = "duplicates"
)

// NoExtensionKey is the reserved extension key for files without one.
const NoExtensionKey = "no_extension"

// folderSuffix is appended to extension and size keys so destination
// folders are recognizable on re-runs ("txt_files", "light_files").
const folderSuffix = "_files"

// Classifier computes destination keys from entry metadata.
type Classifier struct {
	Sizes    SizeCategories
	Calendar calendar.System

	// CaptureDate, when set, supplies a preferred timestamp for date mode
	// (EXIF capture dates for photos). A false return falls back to the
	// entry's modification time.
	CaptureDate func(path string) (time.Time, bool)
}

// Folder returns the destination folder name for entry under mode. It is a
// pure function of the entry snapshot; duplicate mode has no destination
// folder and is rejected here.
func (c *Classifier) Folder(entry scan.Entry, mode Mode) (string, error) {
	switch mode {
	case ModeExtension:
		return ExtensionKey(entry.Name) + folderSuffix, nil
	case ModeSize:
		return c.Sizes.Bucket(entry.Size) + folderSuffix, nil
	case ModeDate:
		ts := entry.ModTime
		if c.CaptureDate != nil {
			if captured, ok := c.CaptureDate(entry.Path); ok {
				ts = captured
			}
		}
		return c.Calendar.Convert(ts).Label, nil
	default:
		return "", fmt.Errorf("mode %q does not classify into folders", mode)
	}
}

// ExtensionKey normalizes a file name's extension into a destination key:
// lower-cased, leading dot stripped, NFC-normalized so visually identical
// names share one folder. Names without an extension map to NoExtensionKey.
func ExtensionKey(name string) string {
	// Dotfiles like ".bashrc" carry no extension even though filepath.Ext
	// would report one.
	if strings.HasPrefix(name, ".") && !strings.Contains(name[1:], ".") {
		return NoExtensionKey
	}
	ext := filepath.Ext(name)
	ext = strings.TrimPrefix(ext, ".")
	ext = strings.ToLower(norm.NFC.String(ext))
	if ext == "" {
		return NoExtensionKey
	}
	return ext
}

// ParseMode validates a mode string from the CLI surface.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeExtension:
		return ModeExtension, nil
	case ModeSize:
		return ModeSize, nil
	case ModeDate:
		return ModeDate, nil
	case ModeDuplicates:
		return ModeDuplicates, nil
	default:
		return "", fmt.Errorf("unknown mode %q", value)
	}
}
