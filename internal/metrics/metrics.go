// Package metrics records run counters and writes them in the Prometheus
// text format, for collection by a node exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "floodspectre"

// Recorder holds the counters of a single run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	rows     prometheus.Counter
	dropped  prometheus.Counter
	retained prometheus.Gauge
	reports  *prometheus.CounterVec
	duration prometheus.Gauge
}

// New creates a Recorder with every metric registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_total",
			Help:      "Data rows read from the input.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Rows dropped because they could not be parsed.",
		}),
		retained: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records_retained",
			Help:      "Records inside the funding-year window.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_written_total",
			Help:      "Output files written, by file name.",
		}, []string{"file"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the run.",
		}),
	}
	r.registry.MustRegister(r.rows, r.dropped, r.retained, r.reports, r.duration)
	return r
}

// ObserveDataset records the ingestion counts.
func (r *Recorder) ObserveDataset(rows, dropped, retained int) {
	r.rows.Add(float64(rows))
	r.dropped.Add(float64(dropped))
	r.retained.Set(float64(retained))
}

// ReportWritten counts one written output file.
func (r *Recorder) ReportWritten(file string) {
	r.reports.WithLabelValues(file).Inc()
}

// ObserveDuration records the run duration.
func (r *Recorder) ObserveDuration(d time.Duration) {
	r.duration.Set(d.Seconds())
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
