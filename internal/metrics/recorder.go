package metrics

import "time"

// RunOutcomeLabel enumerates final run states.
type RunOutcomeLabel string

const (
	RunSuccess RunOutcomeLabel = "success"
	// RunPartial means at least one page failed to read or write.
	RunPartial RunOutcomeLabel = "partial"
	RunFailed  RunOutcomeLabel = "failed"
)

// Recorder defines observability hooks for an injection run.
type Recorder interface {
	IncFileOutcome(outcome string)
	SetFilesScanned(n int)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome RunOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFileOutcome(string)            {}
func (NoopRecorder) SetFilesScanned(int)              {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)    {}
