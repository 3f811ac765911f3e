package authflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chattr-app/authflow/api"
	"github.com/chattr-app/authflow/internal/flows"
	"github.com/chattr-app/authflow/realtime"
	"github.com/chattr-app/authflow/session"
)

// Engine defines a public type used by authflow APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// The engine itself is safe for concurrent use; the flow controllers it
// hands out are not.
type Engine struct {
	config       Config
	api          *api.Client
	sessionStore session.Store
	audit        *auditDispatcher
	metrics      *Metrics
	deviceID     string

	mu          sync.RWMutex
	accessToken string
}

// DeviceID describes the deviceid operation and its observable behavior.
//
// DeviceID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) DeviceID() string {
	return e.deviceID
}

// NewLoginFlow describes the newloginflow operation and its observable behavior.
//
// The returned controller must be driven from a single goroutine.
func (e *Engine) NewLoginFlow() *LoginFlow {
	return &LoginFlow{
		engine: e,
		step:   LoginStepIdentify,
	}
}

// NewPasswordResetFlow describes the newpasswordresetflow operation and its observable behavior.
//
// The returned controller must be driven from a single goroutine.
func (e *Engine) NewPasswordResetFlow() *PasswordResetFlow {
	return &PasswordResetFlow{
		engine: e,
		step:   ResetStepFindAccount,
	}
}

// RestoreSession describes the restoresession operation and its observable behavior.
//
// RestoreSession may return an error when input validation, dependency calls, or security checks fail.
// RestoreSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RestoreSession(ctx context.Context) (*Session, error) {
	s, err := e.sessionStore.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNoSession
		}
		if errors.Is(err, session.ErrCorrupt) {
			// An unreadable record can never be resumed. Clear the slot so
			// the next launch starts clean.
			_ = e.sessionStore.Delete(ctx)
			return nil, ErrNoSession
		}
		return nil, err
	}

	if session.TokenExpired(s.AccessToken, time.Now()) {
		_ = e.purgeSession(ctx)
		e.metricInc(MetricSessionExpired)
		e.emitAudit(ctx, auditEventSessionRestore, "session", s.User.ID, false, ErrSessionExpired, nil)
		return nil, ErrSessionExpired
	}

	e.setToken(s.AccessToken)
	e.metricInc(MetricSessionRestored)
	e.emitAudit(ctx, auditEventSessionRestore, "session", s.User.ID, true, nil, nil)
	return s, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout is idempotent; logging out without a stored session succeeds.
func (e *Engine) Logout(ctx context.Context) error {
	err := e.purgeSession(ctx)
	e.emitAudit(ctx, auditEventLogout, "session", "", err == nil, err, nil)
	return err
}

// OpenStream describes the openstream operation and its observable behavior.
//
// OpenStream may return an error when input validation, dependency calls, or security checks fail.
func (e *Engine) OpenStream(ctx context.Context) (*realtime.Stream, error) {
	if !e.config.Realtime.Enabled {
		return nil, ErrRealtimeDisabled
	}
	token := e.bearerToken()
	if token == "" {
		return nil, ErrNoSession
	}

	return realtime.Dial(ctx, realtime.Config{
		URL:              e.config.Realtime.URL,
		HandshakeTimeout: e.config.Realtime.HandshakeTimeout,
		PingInterval:     e.config.Realtime.PingInterval,
	}, token)
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	return e.audit.Dropped()
}

// Close describes the close operation and its observable behavior.
//
// Close drains and stops the audit dispatcher. The engine must not be
// used after Close returns.
func (e *Engine) Close() {
	e.audit.Close()
}

/*
====================================
SESSION PLUMBING
====================================
*/

func (e *Engine) establishSession(ctx context.Context, s *session.Session) error {
	if err := e.sessionStore.Save(ctx, s); err != nil {
		return err
	}
	e.setToken(s.AccessToken)
	e.metricInc(MetricSessionPersisted)
	return nil
}

func (e *Engine) purgeSession(ctx context.Context) error {
	err := e.sessionStore.Delete(ctx)
	e.setToken("")
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	e.metricInc(MetricSessionPurged)
	return nil
}

func (e *Engine) handleUnauthorized(ctx context.Context) {
	_ = e.purgeSession(ctx)
	e.metricInc(MetricUnauthorizedPurge)
	e.emitAudit(ctx, auditEventUnauthorized, "session", "", false, ErrSessionExpired, nil)
}

func (e *Engine) bearerToken() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.accessToken
}

func (e *Engine) setToken(token string) {
	e.mu.Lock()
	e.accessToken = token
	e.mu.Unlock()
}

/*
====================================
METRICS PLUMBING
====================================
*/

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}

func (e *Engine) metricIncInt(id int) {
	e.metrics.Inc(MetricID(id))
}

func (e *Engine) observeLatency(start time.Time) {
	e.metrics.Observe(MetricRequestLatency, time.Since(start))
}

/*
====================================
FLOW DEPENDENCIES
====================================
*/

func (e *Engine) loginDeps() flows.LoginDeps {
	return flows.LoginDeps{
		MinPasswordLength: e.config.Login.MinPasswordLength,
		DeviceID:          e.deviceID,

		CheckIdentifier: e.api.CheckIdentifier,
		Login: func(ctx context.Context, identifier, wireType, password string) (string, session.User, error) {
			res, err := e.api.Login(ctx, api.LoginRequest{
				Identifier: identifier,
				Type:       wireType,
				Password:   password,
			})
			if err != nil {
				return "", session.User{}, err
			}
			return res.AccessToken, res.User, nil
		},

		MetricInc: e.metricIncInt,
		EmitAudit: e.flowAudit("login"),

		Metrics: flows.LoginMetrics{
			IdentifyExists:   int(MetricIdentifyExists),
			IdentifyNotFound: int(MetricIdentifyNotFound),
			IdentifyFailure:  int(MetricIdentifyFailure),
			LoginSuccess:     int(MetricLoginSuccess),
			LoginFailure:     int(MetricLoginFailure),
		},
		Events: flows.LoginEvents{
			Identify: auditEventIdentify,
			Login:    auditEventLogin,
		},
		Errors: flows.LoginErrors{
			EngineNotReady:    ErrEngineNotReady,
			UserNotFound:      ErrUserNotFound,
			CredentialPayload: ErrCredentialPayload,
		},
	}
}

func (e *Engine) resetDeps() flows.ResetDeps {
	return flows.ResetDeps{
		MinPasswordLength: e.config.Login.MinPasswordLength,

		ForgetPassword: e.api.ForgetPassword,
		VerifyOTP: func(ctx context.Context, identifier, code string) (string, bool, error) {
			res, err := e.api.VerifyOTP(ctx, identifier, code)
			if err != nil {
				return "", false, err
			}
			return res.ResetToken, res.Valid, nil
		},
		ResetPassword: func(ctx context.Context, resetToken, newPassword, identifier string) (bool, error) {
			return e.api.ResetPassword(ctx, api.ResetPasswordRequest{
				ResetToken:  resetToken,
				NewPassword: newPassword,
				Identifier:  identifier,
			}, e.config.PasswordReset.SuccessMessage)
		},

		MetricInc: e.metricIncInt,
		EmitAudit: e.flowAudit("password_reset"),

		Metrics: flows.ResetMetrics{
			CodeRequested:    int(MetricResetCodeRequested),
			CodeDeliveryFail: int(MetricResetCodeDeliveryFailed),
			OTPVerifySuccess: int(MetricOTPVerifySuccess),
			OTPVerifyFailure: int(MetricOTPVerifyFailure),
			ResetSuccess:     int(MetricResetSuccess),
			ResetFailure:     int(MetricResetFailure),
		},
		Events: flows.ResetEvents{
			RequestCode: auditEventResetRequest,
			VerifyCode:  auditEventOTPVerify,
			Confirm:     auditEventResetConfirm,
		},
		Errors: flows.ResetErrors{
			EngineNotReady: ErrEngineNotReady,
			CodeDelivery:   ErrCodeDelivery,
			CodeInvalid:    ErrCodeInvalid,
			ResetRejected:  ErrResetRejected,
			PasswordPolicy: ErrCredentialPayload,
		},
	}
}
