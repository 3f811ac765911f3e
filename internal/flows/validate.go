package flows

import "strings"

// PasswordAcceptable reports whether a candidate password clears the
// configured minimum length. Leading and trailing input is kept as-is;
// whitespace is legal password material.
func PasswordAcceptable(password string, minLength int) bool {
	if minLength <= 0 {
		minLength = 1
	}
	return len(password) >= minLength
}

// PasswordsMatch reports whether the confirmation re-entry equals the
// candidate password exactly.
func PasswordsMatch(password, confirmation string) bool {
	return password == confirmation
}

// CodePresent reports whether a verification code submission is
// non-empty after trimming surrounding whitespace.
func CodePresent(code string) bool {
	return strings.TrimSpace(code) != ""
}
