// Package metrics records per-run command metrics and writes them in the
// Prometheus text exposition format for node_exporter's textfile collector.
//
// iotfwd is a short-lived process, so nothing is served over HTTP. Each
// command owns one file, iotfwd_<command>.prom, in the configured
// directory. A run restores the counters from that file, adds its own
// observation and rewrites the file atomically, so totals accumulate across
// runs and commands never overwrite each other's series.
package metrics
