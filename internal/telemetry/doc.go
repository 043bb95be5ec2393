// Package telemetry sets up OpenTelemetry tracing and metrics export for
// nlpvocab runs. When telemetry is disabled the global providers stay noop
// and no connection is attempted.
package telemetry
