// Package otel bridges engine metrics snapshots into OpenTelemetry
// observable instruments via a registered callback.
package otel
