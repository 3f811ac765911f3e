// Package api is the typed facade over the remote auth endpoints. It is a
// pure translation layer: each method maps one REST call to Go values,
// attaches the bearer token and device header, and normalizes every
// failure into an *Error carrying a single display message.
//
// The facade performs no retries, no caching and no idempotency-key
// generation; a failed call is reported once and re-triggering is the
// flow's (ultimately the user's) decision.
package api
