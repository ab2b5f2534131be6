package metrics

import (
	"testing"
	"time"
)

type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	runDurations   int
	runOutcomes    map[OutcomeLabel]int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stageDurations: map[string]int{}, stageResults: map[string]map[ResultLabel]int{}, runOutcomes: map[OutcomeLabel]int{}}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveRunDuration(_ time.Duration) { t.runDurations++ }
func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncRunOutcome(outcome OutcomeLabel) { t.runOutcomes[outcome]++ }

func TestRecorderImplementations(t *testing.T) {
	for _, r := range []Recorder{NoopRecorder{}, newTestRecorder(), NewPrometheusRecorder(nil)} {
		r.ObserveStageDuration("scaffolding", time.Millisecond)
		r.IncStageResult("scaffolding", ResultSkipped)
		r.ObserveRunDuration(time.Second)
		r.IncRunOutcome(OutcomeCanceled)
	}

	tr := newTestRecorder()
	tr.IncStageResult("executing", ResultFatal)
	tr.IncStageResult("executing", ResultFatal)
	if got := tr.stageResults["executing"][ResultFatal]; got != 2 {
		t.Fatalf("expected 2 fatal results, got %d", got)
	}
}
