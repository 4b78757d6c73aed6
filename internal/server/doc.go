// Package server exposes a run's Prometheus metrics and a liveness probe
// over HTTP while the run is in progress.
package server
