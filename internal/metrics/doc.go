// Package metrics records build metrics for kssbuilder.
//
// Components receive a Recorder through dependency injection. The default is
// NoopRecorder, so callers never need nil checks:
//
//	p := pipeline.New(pipeline.WithRecorder(metrics.NoopRecorder{}))
//
// PrometheusRecorder backs the interface with client_golang collectors on a
// caller-supplied registry. A one-shot CLI build has no scrape endpoint, so
// the registry is written to a node-exporter textfile with WriteTextfile.
package metrics
