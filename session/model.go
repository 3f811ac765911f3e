package session

import "time"

// User is the profile projection the login endpoint returns alongside the
// access token. It is cached with the session so the UI can render the
// account switcher without a network round-trip.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Session defines a public type used by authflow APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
	DeviceID    string `json:"device_id,omitempty"`
	// IssuedAt is when this client obtained the token, persisted in
	// RFC 3339 form like every other timestamp the module emits.
	IssuedAt time.Time `json:"issued_at"`
}
