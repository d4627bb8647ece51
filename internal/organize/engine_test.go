package organize_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sortd/internal/classify"
	"sortd/internal/config"
	"sortd/internal/logging"
	"sortd/internal/organize"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Sizes:      config.Sizes{LightMaxMB: 1, MediumMaxMB: 2},
		Date:       config.Date{Calendar: "gregorian"},
		Duplicates: config.Duplicates{Hash: "sha256"},
		Logging:    config.Logging{Format: "console", Level: "info"},
		History:    config.History{Path: filepath.Join(t.TempDir(), "history.db")},
	}
}

func newEngine(t *testing.T, cfg *config.Config) *organize.Engine {
	t.Helper()
	engine, err := organize.New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine
}

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be gone, stat err = %v", path, err)
	}
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func TestExtensionModeMovesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", []byte("n"))
	writeFile(t, dir, "REPORT.TXT", []byte("r"))
	writeFile(t, dir, "Makefile", []byte("m"))

	engine := newEngine(t, testConfig(t))
	summary, err := engine.Run(context.Background(), dir, classify.ModeExtension, organize.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	counts := summary.Counts()
	if counts.Moved != 3 || counts.Failed != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	mustExist(t, filepath.Join(dir, "txt_files", "notes.txt"))
	mustExist(t, filepath.Join(dir, "txt_files", "REPORT.TXT"))
	mustExist(t, filepath.Join(dir, "no_extension_files", "Makefile"))
	mustNotExist(t, filepath.Join(dir, "notes.txt"))
}

func TestExtensionModeIdempotentRerun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", []byte("a"))

	engine := newEngine(t, testConfig(t))
	if _, err := engine.Run(context.Background(), dir, classify.ModeExtension, organize.Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := engine.Run(context.Background(), dir, classify.ModeExtension, organize.Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Scanned != 0 || len(second.Records) != 0 {
		t.Fatalf("re-run should be a no-op: scanned=%d records=%d", second.Scanned, len(second.Records))
	}
	mustExist(t, filepath.Join(dir, "txt_files", "a.txt"))
}

func TestSizeModeBuckets(t *testing.T) {
	dir := t.TempDir()
	const mb = 1024 * 1024
	writeFile(t, dir, "tiny.bin", make([]byte, 512*1024))
	writeFile(t, dir, "middling.bin", make([]byte, mb+mb/2))
	writeFile(t, dir, "big.bin", make([]byte, 2*mb+1))

	engine := newEngine(t, testConfig(t)) // thresholds: 1 MB / 2 MB
	summary, err := engine.Run(context.Background(), dir, classify.ModeSize, organize.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if counts := summary.Counts(); counts.Moved != 3 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	mustExist(t, filepath.Join(dir, "light_files", "tiny.bin"))
	mustExist(t, filepath.Join(dir, "medium_files", "middling.bin"))
	mustExist(t, filepath.Join(dir, "heavy_files", "big.bin"))
}

func TestDateModeUsesModTime(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "old.log", []byte("x"))
	stamp := time.Date(2024, time.July, 4, 10, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	engine := newEngine(t, testConfig(t))
	if _, err := engine.Run(context.Background(), dir, classify.ModeDate, organize.Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	mustExist(t, filepath.Join(dir, "2024-07", "old.log"))
}

func TestDateModeJalaliCalendar(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "nowruz.txt", []byte("x"))
	stamp := time.Date(2024, time.March, 21, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t)
	cfg.Date.Calendar = "jalali"
	engine := newEngine(t, cfg)
	if _, err := engine.Run(context.Background(), dir, classify.ModeDate, organize.Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	mustExist(t, filepath.Join(dir, "1403-01", "nowruz.txt"))
}

func TestMoveCollisionKeepsBothFiles(t *testing.T) {
	dir := t.TempDir()
	// A prior run already organized a different file with the same name.
	if err := os.MkdirAll(filepath.Join(dir, "txt_files"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "txt_files"), "note.txt", []byte("earlier content"))
	writeFile(t, dir, "note.txt", []byte("newer content"))

	engine := newEngine(t, testConfig(t))
	summary, err := engine.Run(context.Background(), dir, classify.ModeExtension, organize.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	mustExist(t, filepath.Join(dir, "txt_files", "note.txt"))
	mustExist(t, filepath.Join(dir, "txt_files", "note (1).txt"))
	earlier, err := os.ReadFile(filepath.Join(dir, "txt_files", "note.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(earlier) != "earlier content" {
		t.Fatal("existing destination file was overwritten")
	}

	var sawNote bool
	for _, rec := range summary.Records {
		if rec.Note == "renamed to avoid collision" {
			sawNote = true
		}
	}
	if !sawNote {
		t.Fatal("collision resolution should be noted on the record")
	}
}

func TestDuplicatesKeepsOneSurvivor(t *testing.T) {
	dir := t.TempDir()
	content := []byte("exactly the same bytes")
	writeFile(t, dir, "a.txt", content)
	writeFile(t, dir, "b.txt", content)
	writeFile(t, dir, "c.txt", content)
	writeFile(t, dir, "unique.txt", []byte("different bytes here!!"))

	engine := newEngine(t, testConfig(t))
	summary, err := engine.Run(context.Background(), dir, classify.ModeDuplicates, organize.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if counts := summary.Counts(); counts.Deleted != 2 || counts.Failed != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	mustExist(t, filepath.Join(dir, "a.txt")) // first by path order survives
	mustNotExist(t, filepath.Join(dir, "b.txt"))
	mustNotExist(t, filepath.Join(dir, "c.txt"))
	mustExist(t, filepath.Join(dir, "unique.txt"))

	// Re-running is a no-op: the survivor has no twin left.
	second, err := engine.Run(context.Background(), dir, classify.ModeDuplicates, organize.Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if counts := second.Counts(); counts.Deleted != 0 {
		t.Fatalf("second run deleted files: %+v", counts)
	}
	mustExist(t, filepath.Join(dir, "a.txt"))
}

func TestDryRunMutatesNothing(t *testing.T) {
	dir := t.TempDir()
	content := []byte("identical")
	writeFile(t, dir, "a.txt", content)
	writeFile(t, dir, "b.txt", content)
	writeFile(t, dir, "doc.pdf", []byte("pdf"))

	engine := newEngine(t, testConfig(t))

	for _, mode := range []classify.Mode{classify.ModeExtension, classify.ModeDuplicates} {
		summary, err := engine.Run(context.Background(), dir, mode, organize.Options{DryRun: true})
		if err != nil {
			t.Fatalf("%s dry run: %v", mode, err)
		}
		if counts := summary.Counts(); counts.Planned == 0 || counts.Moved != 0 || counts.Deleted != 0 {
			t.Fatalf("%s dry run counts: %+v", mode, counts)
		}
	}

	mustExist(t, filepath.Join(dir, "a.txt"))
	mustExist(t, filepath.Join(dir, "b.txt"))
	mustExist(t, filepath.Join(dir, "doc.pdf"))
	mustNotExist(t, filepath.Join(dir, "txt_files"))
}

func TestPerEntryFailureDoesNotAbortRun(t *testing.T) {
	dir := t.TempDir()
	// A file occupying a destination-folder name makes MkdirAll fail for
	// every .xyz entry while .txt entries keep moving.
	writeFile(t, dir, "blocked.xyz", []byte("b"))
	writeFile(t, dir, "fine.txt", []byte("f"))
	writeFile(t, filepath.Join(dir), "xyz_files", []byte("not a folder"))

	engine := newEngine(t, testConfig(t))
	summary, err := engine.Run(context.Background(), dir, classify.ModeExtension, organize.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The extensionless "xyz_files" blocker is itself organized away.
	counts := summary.Counts()
	if counts.Failed != 1 || counts.Moved != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	mustExist(t, filepath.Join(dir, "txt_files", "fine.txt"))
	mustExist(t, filepath.Join(dir, "blocked.xyz"))
}

func TestStartupFailures(t *testing.T) {
	engine := newEngine(t, testConfig(t))
	ctx := context.Background()

	if _, err := engine.Run(ctx, filepath.Join(t.TempDir(), "missing"), classify.ModeExtension, organize.Options{}); err == nil {
		t.Fatal("expected error for missing target")
	}

	filePath := writeFile(t, t.TempDir(), "plain.txt", []byte("x"))
	if _, err := engine.Run(ctx, filePath, classify.ModeExtension, organize.Options{}); err == nil {
		t.Fatal("expected error for non-directory target")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Date.Calendar = "mayan"
	if _, err := organize.New(cfg, logging.Discard()); err == nil {
		t.Fatal("expected error for unknown calendar")
	}

	cfg = testConfig(t)
	cfg.Duplicates.Hash = "crc32"
	if _, err := organize.New(cfg, logging.Discard()); err == nil {
		t.Fatal("expected error for unknown hash")
	}
}
