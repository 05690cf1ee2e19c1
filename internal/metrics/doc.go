// Package metrics records injection run metrics.
//
// Components receive a Recorder and default to NoopRecorder, so the injector
// never needs nil checks:
//
//	inj, err := inject.New(opts, inject.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The CLI exports the registry as a node_exporter textfile after a run when
// --metrics-file is set, which suits CI jobs that have no scrape endpoint.
package metrics
