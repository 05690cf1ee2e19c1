package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	fileOutcomes *prom.CounterVec
	runOutcomes  *prom.CounterVec
	runDuration  prom.Histogram
	filesScanned prom.Gauge
}

// NewPrometheusRecorder constructs the run metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		fileOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "seekinject",
			Name:      "files_total",
			Help:      "HTML files processed, by outcome",
		}, []string{"outcome"}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "seekinject",
			Name:      "runs_total",
			Help:      "Injection runs by final status",
		}, []string{"outcome"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "seekinject",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full injection run",
			Buckets:   prom.DefBuckets,
		}),
		filesScanned: prom.NewGauge(prom.GaugeOpts{
			Namespace: "seekinject",
			Name:      "files_scanned",
			Help:      "HTML files found under the site root in the last run",
		}),
	}
	reg.MustRegister(pr.fileOutcomes, pr.runOutcomes, pr.runDuration, pr.filesScanned)
	return pr
}

func (p *PrometheusRecorder) IncFileOutcome(outcome string) {
	if p == nil || p.fileOutcomes == nil {
		return
	}
	p.fileOutcomes.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetFilesScanned(n int) {
	if p == nil || p.filesScanned == nil {
		return
	}
	p.filesScanned.Set(float64(n))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcomeLabel) {
	if p == nil || p.runOutcomes == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}
