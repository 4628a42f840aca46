// Package metrics records build metrics.
//
// Components receive a Recorder and default to NoopRecorder, so nothing
// checks for nil. When a metrics file is configured the CLI swaps in a
// PrometheusRecorder and writes its registry in the node_exporter textfile
// format after the build, for scheduled runs that have no scrape endpoint.
package metrics
