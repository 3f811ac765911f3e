// Package authflow is the client-side authentication flow engine for the
// Chattr social API: identifier classification, the multi-step login and
// forgot-password flows, a typed facade over the remote auth endpoints, and
// the locally persisted session.
//
// The package is the public surface. It exposes [Engine], [Builder],
// [Config], the flow controllers ([LoginFlow], [PasswordResetFlow]) and
// value types (IdentifierKind, Session, MetricsSnapshot, etc.). Flow
// orchestration and audit dispatch live under internal/ and are never
// exported; the remote facade, session stores and the realtime stream live
// in their own subpackages (api, session, realtime).
//
// # Concurrency model
//
// Engine methods are safe to call from multiple goroutines after
// initialization through [Builder.Build]. Flow controllers are not: a flow
// models the state of a single screen and must be owned by one goroutine
// for its lifetime, exactly as the backing UI owns its event loop. Remote
// calls inside a flow are strictly sequential; there is no retry, backoff
// or in-flight cancellation beyond the caller's context.
//
// # What this package must NOT do
//
//   - Fabricate tokens. A [Session] is only ever built from a login
//     response of the remote auth service.
//   - Perform I/O outside of Engine and flow methods (construction via
//     Builder is allocation-only until Build).
//   - Retry failed remote calls. Every user action is a single attempt;
//     re-triggering is the caller's decision.
package authflow
