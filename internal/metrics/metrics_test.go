package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDataset(t *testing.T) {
	r := New()
	r.ObserveDataset(120, 7, 90)

	assert.Equal(t, 120.0, testutil.ToFloat64(r.rows))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.dropped))
	assert.Equal(t, 90.0, testutil.ToFloat64(r.retained))
}

func TestReportWrittenByFile(t *testing.T) {
	r := New()
	r.ReportWritten("summary.json")
	r.ReportWritten("summary.json")
	r.ReportWritten("report1_regional_summary.csv")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.reports.WithLabelValues("summary.json")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reports.WithLabelValues("report1_regional_summary.csv")))
}

func TestObserveDuration(t *testing.T) {
	r := New()
	r.ObserveDuration(1500 * time.Millisecond)

	assert.InDelta(t, 1.5, testutil.ToFloat64(r.duration), 1e-9)
}

func TestGathererExposesAllMetrics(t *testing.T) {
	r := New()
	r.ReportWritten("summary.json")

	n, err := testutil.GatherAndCount(r.Gatherer())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestWriteFile(t *testing.T) {
	r := New()
	r.ObserveDataset(10, 1, 8)
	r.ReportWritten("summary.json")

	path := filepath.Join(t.TempDir(), "floodspectre.prom")
	require.NoError(t, r.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)

	for _, name := range []string{
		"floodspectre_rows_total 10",
		"floodspectre_rows_dropped_total 1",
		"floodspectre_records_retained 8",
		`floodspectre_reports_written_total{file="summary.json"} 1`,
		"floodspectre_run_duration_seconds 0",
	} {
		assert.True(t, strings.Contains(out, name), "missing %q in:\n%s", name, out)
	}
}

func TestWriteFileBadPath(t *testing.T) {
	r := New()
	err := r.WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
