package authflow

import (
	"context"
	"time"
)

const (
	auditEventIdentify       = "login_identify"
	auditEventLogin          = "login_submit"
	auditEventLoginCancelled = "login_cancelled"
	auditEventResetRequest   = "reset_request_code"
	auditEventOTPVerify      = "reset_verify_code"
	auditEventResetConfirm   = "reset_confirm"
	auditEventSessionRestore = "session_restore"
	auditEventLogout         = "logout"
	auditEventUnauthorized   = "unauthorized_purge"
)

func (e *Engine) emitAudit(ctx context.Context, eventType, flow, userID string, success bool, err error, metadata func() map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	var errText string
	if err != nil {
		errText = err.Error()
	}
	var meta map[string]string
	if metadata != nil {
		meta = metadata()
	}

	deviceID := e.deviceID
	if ctxID := deviceIDFromContext(ctx); ctxID != "" {
		deviceID = ctxID
	}

	e.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Flow:      flow,
		UserID:    userID,
		DeviceID:  deviceID,
		Success:   success,
		Error:     errText,
		Metadata:  meta,
	})
}

// flowAudit adapts emitAudit to the signature the step runners expect,
// pinning the flow name.
func (e *Engine) flowAudit(flow string) func(context.Context, string, bool, string, error, func() map[string]string) {
	return func(ctx context.Context, eventType string, success bool, userID string, err error, metadata func() map[string]string) {
		e.emitAudit(ctx, eventType, flow, userID, success, err, metadata)
	}
}
