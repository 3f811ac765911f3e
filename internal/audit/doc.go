// Package audit implements the internal audit event model and the buffered
// dispatcher that forwards flow events to a caller-provided sink.
package audit
