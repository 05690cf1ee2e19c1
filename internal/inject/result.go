package inject

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Outcome is the terminal state of one page in a run.
type Outcome string

const (
	OutcomeInjected      Outcome = "injected"
	OutcomeWouldInject   Outcome = "would_inject"
	OutcomeExcluded      Outcome = "excluded"
	OutcomeAlreadyTagged Outcome = "already_tagged"
	OutcomeFailed        Outcome = "failed"
)

// FileRecord is a collected page and the URL path it is served at.
type FileRecord struct {
	Path    string `json:"path"`
	URLPath string `json:"url_path"`
}

// FileOutcome describes what happened to one page.
type FileOutcome struct {
	FileRecord
	Outcome Outcome `json:"outcome"`
	// Matcher is the rule that excluded the page.
	Matcher string `json:"matcher,omitempty"`
	// Prepended is set when the page had no closing head tag.
	Prepended bool   `json:"prepended,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FileError is a read or write failure on a single page. It never aborts a run.
type FileError struct {
	FileRecord
	Err error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

func (e FileError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FileRecord
		Error string `json:"error"`
	}{e.FileRecord, e.Err.Error()})
}

// Result aggregates a run. Modified counts pages written, or pages that
// would have been written in a dry run.
type Result struct {
	RunID         string        `json:"run_id"`
	Root          string        `json:"root"`
	DryRun        bool          `json:"dry_run"`
	Scanned       int           `json:"scanned"`
	Modified      int           `json:"modified"`
	Excluded      int           `json:"excluded"`
	AlreadyTagged int           `json:"already_tagged"`
	Failed        []FileError   `json:"failed"`
	Exclusions    []string      `json:"exclusions"`
	Files         []FileOutcome `json:"files"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"-"`
}

// MarshalJSON adds the run duration in milliseconds.
func (r *Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		*plain
		DurationMS float64 `json:"duration_ms"`
	}{(*plain)(r), float64(r.Duration.Microseconds()) / 1000})
}

func (r *Result) add(o FileOutcome) {
	r.Files = append(r.Files, o)
	switch o.Outcome {
	case OutcomeInjected, OutcomeWouldInject:
		r.Modified++
	case OutcomeExcluded:
		r.Excluded++
	case OutcomeAlreadyTagged:
		r.AlreadyTagged++
	}
}

func (r *Result) fail(fe FileError) {
	r.Failed = append(r.Failed, fe)
	r.Files = append(r.Files, FileOutcome{FileRecord: fe.FileRecord, Outcome: OutcomeFailed, Error: fe.Err.Error()})
}

// Summary renders the human-readable report line printed after a run.
func (r *Result) Summary() string {
	verb := "Injected SpiderSeek script into"
	if r.DryRun {
		verb = "Would inject SpiderSeek script into"
	}
	exclusions := "none"
	if len(r.Exclusions) > 0 {
		exclusions = strings.Join(r.Exclusions, ", ")
	}
	return fmt.Sprintf("%s %d %s (scanned %d, excluded %d, already tagged %d, failed %d); exclusions: %s",
		verb, r.Modified, plural(r.Modified, "file", "files"),
		r.Scanned, r.Excluded, r.AlreadyTagged, len(r.Failed), exclusions)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
