package internal

import "github.com/google/uuid"

// NewDeviceID returns a fresh install identifier. Generated once per
// engine unless the caller supplies a persisted one.
func NewDeviceID() string {
	return uuid.NewString()
}
