// Package telemetry provides ports.Telemetry sinks: structured logs,
// Prometheus counters, fan-out, and a Safe wrapper that makes any sink
// best-effort.
package telemetry
