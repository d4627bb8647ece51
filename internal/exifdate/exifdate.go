// Package exifdate extracts capture dates from photo files. Date mode uses
// it as an optional refinement over modification times.
package exifdate

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// photoExts lists extensions whose files may carry EXIF metadata.
var photoExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".heic": {},
	".hif":  {},
	".dng":  {},
	".arw":  {},
	".cr2":  {},
	".nef":  {},
	".raf":  {},
	".tif":  {},
	".tiff": {},
}

// IsPhoto reports whether the file name looks like a photo worth probing.
func IsPhoto(name string) bool {
	_, ok := photoExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// CaptureDate returns the EXIF capture date for a photo file. The boolean
// is false for non-photo files, unreadable files, and files without EXIF
// data; callers fall back to the modification time.
func CaptureDate(path string) (time.Time, bool) {
	if !IsPhoto(path) {
		return time.Time{}, false
	}
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}
	captured, err := x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return captured, true
}
