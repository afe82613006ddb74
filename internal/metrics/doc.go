// Package metrics records run metrics on a per-run Prometheus registry and
// writes them to a textfile on exit. It also samples runtime memory for the
// details view.
package metrics
