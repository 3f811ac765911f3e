package authflow

import (
	"context"
	"strings"
	"time"

	"github.com/chattr-app/authflow/internal/flows"
)

// PasswordResetFlow drives the four-step forgot-password journey: find the
// account, verify the emailed code, choose a new password, acknowledge.
// Like [LoginFlow] it is NOT safe for concurrent use; drive it from a
// single goroutine.
type PasswordResetFlow struct {
	engine *Engine

	step       ResetStep
	identifier string
	kind       IdentifierKind
	code       string
	password   string
	confirm    string
	resetToken string

	nextEnabled bool
}

// Step describes the step operation and its observable behavior.
func (f *PasswordResetFlow) Step() ResetStep {
	return f.step
}

// Kind returns the classification of the last identifier set on the flow.
func (f *PasswordResetFlow) Kind() IdentifierKind {
	return f.kind
}

// NextEnabled reports whether the current step's input passes local
// validation.
func (f *PasswordResetFlow) NextEnabled() bool {
	return f.nextEnabled
}

// Done reports whether the flow reached its terminal acknowledgment step.
func (f *PasswordResetFlow) Done() bool {
	return f.step == ResetStepDone
}

// SetIdentifier records and classifies the identifier input. On the
// find-account step the Next gate opens iff the input classifies as a
// known identifier kind.
func (f *PasswordResetFlow) SetIdentifier(input string) {
	if f.Done() {
		return
	}
	f.identifier = strings.TrimSpace(input)
	f.kind = Classify(f.identifier, f.engine.config.Classifier.DefaultRegion)
	if f.step == ResetStepFindAccount {
		f.nextEnabled = f.kind != IdentifierInvalid
	}
}

// SetCode records the verification code input.
func (f *PasswordResetFlow) SetCode(code string) {
	if f.Done() {
		return
	}
	f.code = strings.TrimSpace(code)
	if f.step == ResetStepVerifyCode {
		f.nextEnabled = flows.CodePresent(f.code)
	}
}

// SetNewPassword records the replacement password candidate.
func (f *PasswordResetFlow) SetNewPassword(password string) {
	if f.Done() {
		return
	}
	f.password = password
	if f.step == ResetStepNewPassword {
		f.nextEnabled = f.passwordGate()
	}
}

// SetConfirmation records the confirmation re-entry of the replacement
// password. The new-password step only gates open when both entries match
// and clear the minimum length.
func (f *PasswordResetFlow) SetConfirmation(confirmation string) {
	if f.Done() {
		return
	}
	f.confirm = confirmation
	if f.step == ResetStepNewPassword {
		f.nextEnabled = f.passwordGate()
	}
}

// Next describes the next operation and its observable behavior.
//
// Next may return an error when input validation, dependency calls, or security checks fail.
// On a server-side failure the flow stays on its current step with the
// gate still open.
func (f *PasswordResetFlow) Next(ctx context.Context) error {
	if f.Done() {
		return ErrFlowCompleted
	}
	if !f.nextEnabled {
		return ErrNextDisabled
	}

	start := time.Now()
	defer f.engine.observeLatency(start)

	switch f.step {
	case ResetStepFindAccount:
		if err := flows.RunRequestCode(ctx, f.identifier, f.engine.resetDeps()); err != nil {
			return err
		}
		f.step = ResetStepVerifyCode
		f.nextEnabled = flows.CodePresent(f.code)
		return nil

	case ResetStepVerifyCode:
		token, err := flows.RunVerifyCode(ctx, f.identifier, f.code, f.engine.resetDeps())
		if err != nil {
			return err
		}
		f.resetToken = token
		f.step = ResetStepNewPassword
		f.nextEnabled = f.passwordGate()
		return nil

	case ResetStepNewPassword:
		err := flows.RunResetPassword(ctx, f.resetToken, f.password, f.identifier, f.engine.resetDeps())
		if err != nil {
			return err
		}
		f.step = ResetStepDone
		f.nextEnabled = false
		return nil
	}

	return ErrNextDisabled
}

// Back describes the back operation and its observable behavior.
//
// Back steps to the previous screen, discarding that screen's collected
// input. The find-account step has nothing to go back to, and the terminal
// step cannot be left.
func (f *PasswordResetFlow) Back() error {
	switch f.step {
	case ResetStepVerifyCode:
		f.step = ResetStepFindAccount
		f.code = ""
		f.nextEnabled = f.kind != IdentifierInvalid
		return nil
	case ResetStepNewPassword:
		f.step = ResetStepVerifyCode
		f.password = ""
		f.confirm = ""
		f.resetToken = ""
		f.nextEnabled = flows.CodePresent(f.code)
		return nil
	case ResetStepDone:
		return ErrFlowCompleted
	default:
		return ErrBackDisabled
	}
}

// Reset returns the flow to its initial state, clearing all collected
// input and the captured reset token.
func (f *PasswordResetFlow) Reset() {
	f.step = ResetStepFindAccount
	f.identifier = ""
	f.kind = IdentifierInvalid
	f.code = ""
	f.password = ""
	f.confirm = ""
	f.resetToken = ""
	f.nextEnabled = false
}

func (f *PasswordResetFlow) passwordGate() bool {
	return flows.PasswordAcceptable(f.password, f.engine.config.Login.MinPasswordLength) &&
		flows.PasswordsMatch(f.password, f.confirm)
}
