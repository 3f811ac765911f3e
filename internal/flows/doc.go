// Package flows contains the step transition logic for the login and
// password reset flows, expressed as pure functions over injected
// dependencies so the engine and tests can drive them the same way.
package flows
