package authflow

import (
	"context"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// RFC-5322-lite: dot-atom local part, dotted domain with at least one label
// separator. Deliberately stricter than net/mail, which accepts bare-host
// domains and would misclassify usernames containing '@'.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]{0,61}[A-Za-z0-9])?)+$`)

var phoneShapePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// Classify maps free-form user input to an [IdentifierKind] using strict
// priority matching: email grammar first, then phone-number parsing under
// defaultRegion, then the username grammar (3-30 chars of [A-Za-z0-9_]).
//
// A string that parses as a valid phone number short-circuits the funnel:
// when its line type is not mobile, or it fails the loose +?[0-9]{10,15}
// shape check, the result is IdentifierInvalid and the input is never
// retried as a username. This matches shipped product behavior; whether a
// valid landline should instead fall through to the username check is an
// open product question, so preserve the ordering until that is resolved.
//
// Classify is pure. Recording the detected kind in flow state is the
// caller's responsibility.
func Classify(input, defaultRegion string) IdentifierKind {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return IdentifierInvalid
	}

	if emailPattern.MatchString(trimmed) {
		return IdentifierEmail
	}

	if num, err := phonenumbers.Parse(trimmed, defaultRegion); err == nil && phonenumbers.IsValidNumber(num) {
		if mobileLineType(phonenumbers.GetNumberType(num)) && phoneShapePattern.MatchString(trimmed) {
			return IdentifierPhone
		}
		return IdentifierInvalid
	}

	if usernamePattern.MatchString(trimmed) {
		return IdentifierUsername
	}

	return IdentifierInvalid
}

func mobileLineType(t phonenumbers.PhoneNumberType) bool {
	// FIXED_LINE_OR_MOBILE covers regions (notably NANPA) whose numbering
	// plan cannot distinguish the two.
	return t == phonenumbers.MOBILE || t == phonenumbers.FIXED_LINE_OR_MOBILE
}

// ClassifyIdentifier classifies input under the engine's configured default
// region, or the region attached to ctx via [WithRegion] when present.
func (e *Engine) ClassifyIdentifier(ctx context.Context, input string) IdentifierKind {
	region := e.config.Classifier.DefaultRegion
	if r := regionFromContext(ctx); r != "" {
		region = r
	}
	return Classify(input, region)
}
