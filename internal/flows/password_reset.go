package flows

import "context"

type ResetMetrics struct {
	CodeRequested    int
	CodeDeliveryFail int
	OTPVerifySuccess int
	OTPVerifyFailure int
	ResetSuccess     int
	ResetFailure     int
}

type ResetEvents struct {
	RequestCode string
	VerifyCode  string
	Confirm     string
}

type ResetErrors struct {
	EngineNotReady error
	CodeDelivery   error
	CodeInvalid    error
	ResetRejected  error
	PasswordPolicy error
}

type ResetDeps struct {
	MinPasswordLength int

	ForgetPassword func(context.Context, string) (bool, error)
	VerifyOTP      func(context.Context, string, string) (string, bool, error)
	ResetPassword  func(context.Context, string, string, string) (bool, error)

	MetricInc func(int)
	EmitAudit func(context.Context, string, bool, string, error, func() map[string]string)

	Metrics ResetMetrics
	Events  ResetEvents
	Errors  ResetErrors
}

// RunRequestCode asks the server to dispatch a verification code for
// the identifier. A nil return means the code was sent.
func RunRequestCode(ctx context.Context, identifier string, deps ResetDeps) error {
	normalizeResetDeps(&deps)

	if deps.ForgetPassword == nil {
		return deps.Errors.EngineNotReady
	}

	sent, err := deps.ForgetPassword(ctx, identifier)
	if err != nil {
		deps.MetricInc(deps.Metrics.CodeDeliveryFail)
		deps.EmitAudit(ctx, deps.Events.RequestCode, false, "", err, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
			}
		})
		return err
	}
	if !sent {
		deps.MetricInc(deps.Metrics.CodeDeliveryFail)
		deps.EmitAudit(ctx, deps.Events.RequestCode, false, "", deps.Errors.CodeDelivery, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
			}
		})
		return deps.Errors.CodeDelivery
	}

	deps.MetricInc(deps.Metrics.CodeRequested)
	deps.EmitAudit(ctx, deps.Events.RequestCode, true, "", nil, nil)
	return nil
}

// RunVerifyCode submits the received code and returns the single-use
// reset token the final step must present.
func RunVerifyCode(ctx context.Context, identifier, code string, deps ResetDeps) (string, error) {
	normalizeResetDeps(&deps)

	if deps.VerifyOTP == nil {
		return "", deps.Errors.EngineNotReady
	}
	if !CodePresent(code) {
		deps.MetricInc(deps.Metrics.OTPVerifyFailure)
		return "", deps.Errors.CodeInvalid
	}

	resetToken, valid, err := deps.VerifyOTP(ctx, identifier, code)
	if err != nil {
		deps.MetricInc(deps.Metrics.OTPVerifyFailure)
		deps.EmitAudit(ctx, deps.Events.VerifyCode, false, "", err, nil)
		return "", err
	}
	if !valid {
		deps.MetricInc(deps.Metrics.OTPVerifyFailure)
		deps.EmitAudit(ctx, deps.Events.VerifyCode, false, "", deps.Errors.CodeInvalid, nil)
		return "", deps.Errors.CodeInvalid
	}

	deps.MetricInc(deps.Metrics.OTPVerifySuccess)
	deps.EmitAudit(ctx, deps.Events.VerifyCode, true, "", nil, nil)
	return resetToken, nil
}

// RunResetPassword performs the final reset call with the token from
// RunVerifyCode. The confirmation re-entry must already have been
// checked by the caller's step gating.
func RunResetPassword(ctx context.Context, resetToken, newPassword, identifier string, deps ResetDeps) error {
	normalizeResetDeps(&deps)

	if deps.ResetPassword == nil {
		return deps.Errors.EngineNotReady
	}
	if resetToken == "" || !PasswordAcceptable(newPassword, deps.MinPasswordLength) {
		deps.MetricInc(deps.Metrics.ResetFailure)
		return deps.Errors.PasswordPolicy
	}

	ok, err := deps.ResetPassword(ctx, resetToken, newPassword, identifier)
	if err != nil {
		deps.MetricInc(deps.Metrics.ResetFailure)
		deps.EmitAudit(ctx, deps.Events.Confirm, false, "", err, nil)
		return err
	}
	if !ok {
		deps.MetricInc(deps.Metrics.ResetFailure)
		deps.EmitAudit(ctx, deps.Events.Confirm, false, "", deps.Errors.ResetRejected, nil)
		return deps.Errors.ResetRejected
	}

	deps.MetricInc(deps.Metrics.ResetSuccess)
	deps.EmitAudit(ctx, deps.Events.Confirm, true, "", nil, nil)
	return nil
}

func normalizeResetDeps(deps *ResetDeps) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
}
