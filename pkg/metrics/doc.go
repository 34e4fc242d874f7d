// Package metrics records pipeline activity. Recorder is the injection point;
// NoopRecorder is the default and PrometheusRecorder exports to a Prometheus
// registry.
package metrics
