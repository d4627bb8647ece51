package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	content := strings.Join([]string{
		"[logging]",
		"dir = \"" + filepath.Join(base, "logs") + "\"",
		"level = \"info\"",
		"",
		"[history]",
		"path = \"" + filepath.Join(base, "history.db") + "\"",
	}, "\n")
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v\noutput: %s", args, err, out.String())
	}
	return out.String()
}

func TestExtensionCommandEndToEnd(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)

	target := filepath.Join(base, "target")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"a.txt":  "alpha",
		"b.pdf":  "bravo",
		"README": "charlie",
	} {
		if err := os.WriteFile(filepath.Join(target, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out := runCommand(t, "--config", cfgPath, "extension", target)
	if !strings.Contains(out, "moved") {
		t.Fatalf("summary missing counts: %s", out)
	}

	for _, want := range []string{
		filepath.Join("txt_files", "a.txt"),
		filepath.Join("pdf_files", "b.pdf"),
		filepath.Join("no_extension_files", "README"),
	} {
		if _, err := os.Stat(filepath.Join(target, want)); err != nil {
			t.Fatalf("expected %s: %v", want, err)
		}
	}

	// The run is visible in history.
	histOut := runCommand(t, "--config", cfgPath, "history")
	if !strings.Contains(histOut, "extension") || !strings.Contains(histOut, target) {
		t.Fatalf("history missing run: %s", histOut)
	}
}

func TestDuplicatesDryRunLeavesFiles(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)

	target := filepath.Join(base, "target")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"one.bin", "two.bin"} {
		if err := os.WriteFile(filepath.Join(target, name), []byte("same payload"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out := runCommand(t, "--config", cfgPath, "duplicates", "--dry-run", target)
	if !strings.Contains(out, "Dry run") {
		t.Fatalf("expected dry-run notice: %s", out)
	}
	for _, name := range []string{"one.bin", "two.bin"} {
		if _, err := os.Stat(filepath.Join(target, name)); err != nil {
			t.Fatalf("dry run must not delete %s: %v", name, err)
		}
	}
}

func TestRunFailsForMissingTarget(t *testing.T) {
	base := t.TempDir()
	cfgPath := writeTestConfig(t, base)

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "size", filepath.Join(base, "missing")})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected startup error for missing target")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	base := t.TempDir()
	cfgPath := filepath.Join(base, "sortd.toml")

	out := runCommand(t, "--config", cfgPath, "config", "init")
	if !strings.Contains(out, cfgPath) {
		t.Fatalf("init output missing path: %s", out)
	}

	showOut := runCommand(t, "--config", cfgPath, "config", "show")
	for _, section := range []string{"[sizes]", "[date]", "[duplicates]"} {
		if !strings.Contains(showOut, section) {
			t.Fatalf("show output missing %s: %s", section, showOut)
		}
	}
}
