package flows

import (
	"context"
	"time"

	"github.com/chattr-app/authflow/session"
)

type LoginMetrics struct {
	IdentifyExists   int
	IdentifyNotFound int
	IdentifyFailure  int
	LoginSuccess     int
	LoginFailure     int
}

type LoginEvents struct {
	Identify string
	Login    string
}

type LoginErrors struct {
	EngineNotReady    error
	UserNotFound      error
	CredentialPayload error
}

type LoginDeps struct {
	MinPasswordLength int
	DeviceID          string
	Now               func() time.Time

	CheckIdentifier func(context.Context, string) (bool, error)
	Login           func(context.Context, string, string, string) (string, session.User, error)

	MetricInc func(int)
	EmitAudit func(context.Context, string, bool, string, error, func() map[string]string)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunIdentify resolves the first login step. A nil return means the
// account exists and the flow may advance to the password step.
func RunIdentify(ctx context.Context, identifier string, deps LoginDeps) error {
	normalizeLoginDeps(&deps)

	if deps.CheckIdentifier == nil {
		return deps.Errors.EngineNotReady
	}
	if identifier == "" {
		return deps.Errors.CredentialPayload
	}

	exists, err := deps.CheckIdentifier(ctx, identifier)
	if err != nil {
		deps.MetricInc(deps.Metrics.IdentifyFailure)
		deps.EmitAudit(ctx, deps.Events.Identify, false, "", err, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
			}
		})
		return err
	}
	if !exists {
		deps.MetricInc(deps.Metrics.IdentifyNotFound)
		deps.EmitAudit(ctx, deps.Events.Identify, false, "", deps.Errors.UserNotFound, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
			}
		})
		return deps.Errors.UserNotFound
	}

	deps.MetricInc(deps.Metrics.IdentifyExists)
	deps.EmitAudit(ctx, deps.Events.Identify, true, "", nil, nil)
	return nil
}

// RunLogin resolves the second login step and, on success, returns the
// session the engine should persist.
func RunLogin(ctx context.Context, identifier, wireType, password string, deps LoginDeps) (*session.Session, error) {
	normalizeLoginDeps(&deps)

	if deps.Login == nil {
		return nil, deps.Errors.EngineNotReady
	}
	if identifier == "" || wireType == "" || !PasswordAcceptable(password, deps.MinPasswordLength) {
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.Login, false, "", deps.Errors.CredentialPayload, func() map[string]string {
			return map[string]string{
				"reason": "invalid_payload",
			}
		})
		return nil, deps.Errors.CredentialPayload
	}

	token, user, err := deps.Login(ctx, identifier, wireType, password)
	if err != nil {
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.Login, false, "", err, func() map[string]string {
			return map[string]string{
				"identifier": identifier,
			}
		})
		return nil, err
	}

	deps.MetricInc(deps.Metrics.LoginSuccess)
	deps.EmitAudit(ctx, deps.Events.Login, true, user.ID, nil, nil)

	return &session.Session{
		AccessToken: token,
		User:        user,
		DeviceID:    deps.DeviceID,
		IssuedAt:    deps.Now(),
	}, nil
}

func normalizeLoginDeps(deps *LoginDeps) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
}
