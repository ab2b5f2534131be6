package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("materializing", 150*time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.IncStageResult("materializing", ResultSuccess)
	pr.IncRunOutcome(OutcomeSuccess)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "booktest_stage_duration_seconds")
	assert.Contains(t, names, "booktest_run_outcomes_total")
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveStageDuration("x", time.Second)
	pr.ObserveRunDuration(time.Second)
	pr.IncStageResult("x", ResultFatal)
	pr.IncRunOutcome(OutcomeFailed)
	assert.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "never.prom")))
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncStageResult("executing", ResultFatal)
	pr.IncRunOutcome(OutcomeFailed)

	path := filepath.Join(t.TempDir(), "booktest.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `booktest_stage_results_total{result="fatal",stage="executing"} 1`), text)
	assert.Contains(t, text, `booktest_run_outcomes_total{outcome="failed"} 1`)
}
