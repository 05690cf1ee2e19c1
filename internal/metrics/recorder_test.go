package metrics

import "time"

// testRecorder is an in-memory Recorder used to check call wiring.
type testRecorder struct {
	fileOutcomes map[string]int
	runOutcomes  map[RunOutcomeLabel]int
	scanned      int
	runs         int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{fileOutcomes: map[string]int{}, runOutcomes: map[RunOutcomeLabel]int{}}
}

func (t *testRecorder) IncFileOutcome(outcome string)         { t.fileOutcomes[outcome]++ }
func (t *testRecorder) SetFilesScanned(n int)                 { t.scanned = n }
func (t *testRecorder) ObserveRunDuration(time.Duration)      { t.runs++ }
func (t *testRecorder) IncRunOutcome(outcome RunOutcomeLabel) { t.runOutcomes[outcome]++ }

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = newTestRecorder()
)
