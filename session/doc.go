// Package session holds the client-side authenticated session and its
// persistence backends: an encrypted on-disk store standing in for the
// device's secure credential storage, a redis store for headless
// deployments of the SDK, and an in-memory store for tests and ephemeral
// processes.
//
// A Session is only ever constructed from a login response of the remote
// auth service; nothing in this package mints tokens.
package session
