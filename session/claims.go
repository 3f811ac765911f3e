package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var claimsParser = jwt.NewParser()

// TokenExpiry reads the exp claim from an access token without verifying
// its signature. Verification belongs to the server; the client only needs
// the expiry to decide whether a restored session is worth presenting.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := claimsParser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// TokenExpired reports whether the token carries an exp claim in the past.
// Tokens without a parseable expiry are treated as live; the server remains
// the authority and will answer 401 if it disagrees.
func TokenExpired(token string, now time.Time) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return !exp.After(now)
}
