package authflow

import (
	internalaudit "github.com/chattr-app/authflow/internal/audit"
)

type auditDispatcher = internalaudit.Dispatcher

// newAuditDispatcher returns nil when auditing is disabled; the nil
// dispatcher is a safe no-op everywhere the engine emits.
func newAuditDispatcher(cfg AuditConfig, sink AuditSink) *auditDispatcher {
	if !cfg.Enabled {
		return nil
	}
	return internalaudit.NewDispatcher(sink, cfg.BufferSize, cfg.DropIfFull)
}
