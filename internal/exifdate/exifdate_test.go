package exifdate_test

import (
	"os"
	"path/filepath"
	"testing"

	"sortd/internal/exifdate"
)

func TestIsPhoto(t *testing.T) {
	cases := map[string]bool{
		"holiday.JPG":  true,
		"scan.tiff":    true,
		"raw.ARW":      true,
		"notes.txt":    false,
		"video.mp4":    false,
		"no_extension": false,
	}
	for name, want := range cases {
		if got := exifdate.IsPhoto(name); got != want {
			t.Errorf("IsPhoto(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestCaptureDateFallsBackGracefully(t *testing.T) {
	dir := t.TempDir()

	// Non-photo name: not probed at all.
	if _, ok := exifdate.CaptureDate(filepath.Join(dir, "doc.txt")); ok {
		t.Fatal("non-photo must not report a capture date")
	}

	// Photo name without EXIF payload: probe fails, fallback signalled.
	jpg := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(jpg, []byte("not a real jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := exifdate.CaptureDate(jpg); ok {
		t.Fatal("jpeg without EXIF must fall back")
	}

	// Missing file.
	if _, ok := exifdate.CaptureDate(filepath.Join(dir, "gone.jpg")); ok {
		t.Fatal("missing file must fall back")
	}
}
