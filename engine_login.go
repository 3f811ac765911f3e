package authflow

import (
	"context"
	"strings"
	"time"

	"github.com/chattr-app/authflow/internal/flows"
)

// LoginFlow drives the two-step login: identify the account, then submit
// the password. A flow mirrors one screen-to-screen journey, so it is NOT
// safe for concurrent use; drive it from a single goroutine and create a
// fresh flow per attempt via [Engine.NewLoginFlow].
type LoginFlow struct {
	engine *Engine

	step       LoginStep
	identifier string
	kind       IdentifierKind
	password   string

	nextEnabled bool
	done        bool
	cancelled   bool
	session     *Session
}

// Step describes the step operation and its observable behavior.
func (f *LoginFlow) Step() LoginStep {
	return f.step
}

// Kind returns the classification of the last identifier set on the flow.
func (f *LoginFlow) Kind() IdentifierKind {
	return f.kind
}

// NextEnabled reports whether the current step's input passes local
// validation, i.e. whether a UI should enable its Next button.
func (f *LoginFlow) NextEnabled() bool {
	return f.nextEnabled
}

// Done describes the done operation and its observable behavior.
func (f *LoginFlow) Done() bool {
	return f.done
}

// Cancelled describes the cancelled operation and its observable behavior.
func (f *LoginFlow) Cancelled() bool {
	return f.cancelled
}

// Session returns the established session after a completed flow, nil
// before.
func (f *LoginFlow) Session() *Session {
	return f.session
}

// SetIdentifier records and classifies the identifier input. On the
// identify step the Next gate opens iff the input classifies as a known
// identifier kind.
func (f *LoginFlow) SetIdentifier(input string) {
	if f.done || f.cancelled {
		return
	}
	f.identifier = strings.TrimSpace(input)
	f.kind = Classify(f.identifier, f.engine.config.Classifier.DefaultRegion)
	if f.step == LoginStepIdentify {
		f.nextEnabled = f.kind != IdentifierInvalid
	}
}

// SetPassword records the password input. On the password step the Next
// gate opens iff the password clears the configured minimum length.
func (f *LoginFlow) SetPassword(password string) {
	if f.done || f.cancelled {
		return
	}
	f.password = password
	if f.step == LoginStepPassword {
		f.nextEnabled = f.passwordGate()
	}
}

// Next describes the next operation and its observable behavior.
//
// Next may return an error when input validation, dependency calls, or security checks fail.
// On a server-side failure the flow stays on its current step with the
// gate still open, so the user can retry or edit the input.
func (f *LoginFlow) Next(ctx context.Context) error {
	if f.done {
		return ErrFlowCompleted
	}
	if f.cancelled {
		return ErrFlowCancelled
	}
	if !f.nextEnabled {
		return ErrNextDisabled
	}

	start := time.Now()
	defer f.engine.observeLatency(start)

	switch f.step {
	case LoginStepIdentify:
		if err := flows.RunIdentify(ctx, f.identifier, f.engine.loginDeps()); err != nil {
			return err
		}
		f.step = LoginStepPassword
		// The password screen always starts with a closed gate, even if
		// SetPassword was called ahead of the step change.
		f.password = ""
		f.nextEnabled = false
		return nil

	case LoginStepPassword:
		sess, err := flows.RunLogin(ctx, f.identifier, f.kind.WireType(), f.password, f.engine.loginDeps())
		if err != nil {
			return err
		}
		if err := f.engine.establishSession(ctx, sess); err != nil {
			return err
		}
		f.session = sess
		f.done = true
		f.nextEnabled = false
		return nil
	}

	return ErrNextDisabled
}

// Back describes the back operation and its observable behavior.
//
// Backing out of the password step returns to the identify step with the
// password cleared. Backing out of the identify step cancels the flow for
// good; a cancelled flow only answers ErrFlowCancelled.
func (f *LoginFlow) Back() error {
	if f.done {
		return ErrFlowCompleted
	}
	if f.cancelled {
		return ErrFlowCancelled
	}

	switch f.step {
	case LoginStepPassword:
		f.step = LoginStepIdentify
		f.password = ""
		f.nextEnabled = f.kind != IdentifierInvalid
		return nil
	default:
		f.cancelled = true
		f.nextEnabled = false
		f.engine.metricInc(MetricFlowCancelled)
		f.engine.emitAudit(context.Background(), auditEventLoginCancelled, "login", "", false, nil, nil)
		return nil
	}
}

// Reset returns the flow to its initial state, clearing all collected
// input, the cancelled flag, and any completed session reference.
func (f *LoginFlow) Reset() {
	f.step = LoginStepIdentify
	f.identifier = ""
	f.kind = IdentifierInvalid
	f.password = ""
	f.nextEnabled = false
	f.done = false
	f.cancelled = false
	f.session = nil
}

func (f *LoginFlow) passwordGate() bool {
	return flows.PasswordAcceptable(f.password, f.engine.config.Login.MinPasswordLength)
}
