package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"sortd/internal/organize"
)

const timeRounding = time.Millisecond

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func colorizeOutput(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func renderSummary(w io.Writer, summary *organize.Summary, logDir string) {
	colorize := colorizeOutput(w)
	counts := summary.Counts()

	heading := fmt.Sprintf("Organized %s", targetLabel(summary))
	if summary.DryRun {
		heading = fmt.Sprintf("Previewed %s", targetLabel(summary))
	}
	fmt.Fprintln(w, heading)

	rows := [][]string{
		{"scanned", strconv.Itoa(summary.Scanned)},
		{"moved", strconv.Itoa(counts.Moved)},
		{"deleted", strconv.Itoa(counts.Deleted)},
		{"skipped", strconv.Itoa(counts.Skipped)},
		{"failed", strconv.Itoa(counts.Failed)},
	}
	if summary.DryRun {
		rows = append(rows, []string{"planned", strconv.Itoa(counts.Planned)})
	}
	fmt.Fprintln(w, renderTable([]string{"Result", "Count"}, rows, 1))

	switch {
	case counts.Failed > 0:
		line := fmt.Sprintf("%d file(s) could not be organized; see the log in %s", counts.Failed, logDir)
		fmt.Fprintln(w, paint(line, ansiYellow, colorize))
		for _, rec := range summary.Records {
			if rec.Outcome != organize.OutcomeFailed {
				continue
			}
			fmt.Fprintln(w, paint("  "+rec.Path+": "+errString(rec.Err), ansiRed, colorize))
		}
	case summary.DryRun:
		fmt.Fprintln(w, paint("Dry run: no file was touched", ansiGreen, colorize))
	default:
		fmt.Fprintln(w, paint("Run completed without failures", ansiGreen, colorize))
	}

	fmt.Fprintf(w, "Run %s finished in %s\n", summary.RunID, summary.FinishedAt.Sub(summary.StartedAt).Round(timeRounding))
}

func paint(line, color string, colorize bool) string {
	if !colorize || color == "" {
		return line
	}
	return color + line + ansiReset
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}
