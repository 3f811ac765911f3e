package authflow

import (
	"io"

	internalaudit "github.com/chattr-app/authflow/internal/audit"
	"github.com/chattr-app/authflow/session"
)

// IdentifierKind is the semantic classification of a user-entered account
// identifier. The zero value is IdentifierInvalid so an unclassified field
// never gates a flow open by accident.
type IdentifierKind uint8

const (
	// IdentifierInvalid means the input matched no identifier grammar and
	// must keep the flow's Next action disabled.
	IdentifierInvalid IdentifierKind = iota
	// IdentifierEmail is an exported constant or variable used by the flow engine.
	IdentifierEmail
	// IdentifierPhone is an exported constant or variable used by the flow engine.
	IdentifierPhone
	// IdentifierUsername is an exported constant or variable used by the flow engine.
	IdentifierUsername
)

// String describes the string operation and its observable behavior.
func (k IdentifierKind) String() string {
	switch k {
	case IdentifierEmail:
		return "email"
	case IdentifierPhone:
		return "phone"
	case IdentifierUsername:
		return "username"
	default:
		return "invalid"
	}
}

// WireType returns the value the remote login endpoint expects in its
// "type" field. IdentifierPhone deliberately maps to "phone_number"; an
// invalid kind maps to the empty string and fails payload validation.
func (k IdentifierKind) WireType() string {
	switch k {
	case IdentifierEmail:
		return "email"
	case IdentifierPhone:
		return "phone_number"
	case IdentifierUsername:
		return "username"
	default:
		return ""
	}
}

// Session is the client-held proof of authentication: the bearer token
// issued by the remote auth service plus the cached user projection.
//
//	Docs: session package
type Session = session.Session

// UserProfile is the profile projection returned by the login endpoint and
// cached inside [Session].
type UserProfile = session.User

// LoginStep is the position inside the login flow.
type LoginStep uint8

const (
	// LoginStepIdentify is an exported constant or variable used by the flow engine.
	LoginStepIdentify LoginStep = iota + 1
	// LoginStepPassword is an exported constant or variable used by the flow engine.
	LoginStepPassword
)

// ResetStep is the position inside the forgot-password flow.
type ResetStep uint8

const (
	// ResetStepFindAccount is an exported constant or variable used by the flow engine.
	ResetStepFindAccount ResetStep = iota + 1
	// ResetStepVerifyCode is an exported constant or variable used by the flow engine.
	ResetStepVerifyCode
	// ResetStepNewPassword is an exported constant or variable used by the flow engine.
	ResetStepNewPassword
	// ResetStepDone is the terminal acknowledgment step; it has no Next.
	ResetStepDone
)

// AuditEvent is a structured audit record emitted by the engine and its
// flows.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit
// dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
