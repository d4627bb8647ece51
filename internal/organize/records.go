package organize

import (
	"time"

	"sortd/internal/classify"
)

// Action names the mutation attempted for one entry.
type Action string

const (
	ActionMove   Action = "move"
	ActionDelete Action = "delete"
	ActionKeep   Action = "keep"
)

// Outcome is the result of one attempted mutation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
	// OutcomePlanned marks dry-run records: the mutation that would have
	// happened, without any filesystem change.
	OutcomePlanned Outcome = "planned"
)

// Record is the outcome of one attempted mutation. A failed record never
// aborts the run.
type Record struct {
	Path    string
	Action  Action
	Dest    string
	Outcome Outcome
	Note    string
	Err     error
}

// Counts aggregates record outcomes for the run summary.
type Counts struct {
	Moved   int
	Deleted int
	Skipped int
	Failed  int
	Planned int
}

// Summary is the full result of one engine run.
type Summary struct {
	RunID      string
	Target     string
	Mode       classify.Mode
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Scanned    int
	Records    []Record
}

// Counts tallies the summary's records.
func (s *Summary) Counts() Counts {
	var c Counts
	for _, r := range s.Records {
		switch r.Outcome {
		case OutcomePlanned:
			c.Planned++
		case OutcomeSkipped:
			c.Skipped++
		case OutcomeFailed:
			c.Failed++
		case OutcomeSuccess:
			switch r.Action {
			case ActionDelete:
				c.Deleted++
			case ActionMove:
				c.Moved++
			}
		}
	}
	return c
}
