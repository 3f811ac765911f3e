package api

import (
	"encoding/json"
	"strings"
)

// FallbackMessage is shown when neither the response body nor the transport
// error yields a usable message.
const FallbackMessage = "Something went wrong"

// Error is the normalized failure of a facade call. Message is always
// non-empty and safe to display verbatim.
type Error struct {
	StatusCode int
	Message    string
	cause      error
}

// Error describes the error operation and its observable behavior.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying transport error, when any.
func (e *Error) Unwrap() error {
	return e.cause
}

// messageBody matches the error envelope the API returns: message is either
// a string or an array of strings (validation errors come back as arrays).
type messageBody struct {
	Message json.RawMessage `json:"message"`
}

// normalizeError builds the display message in strict preference order:
// the response body's message (arrays joined with ", "), then the transport
// error's own text, then FallbackMessage.
func normalizeError(status int, body []byte, cause error) *Error {
	if msg := extractMessage(body); msg != "" {
		return &Error{StatusCode: status, Message: msg, cause: cause}
	}
	if cause != nil && cause.Error() != "" {
		return &Error{StatusCode: status, Message: cause.Error(), cause: cause}
	}
	return &Error{StatusCode: status, Message: FallbackMessage, cause: cause}
}

func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope messageBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(envelope.Message, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(envelope.Message, &many); err == nil && len(many) > 0 {
		return strings.Join(many, ", ")
	}

	return ""
}
