package internaldefs

import (
	authflow "github.com/chattr-app/authflow"
)

// CounterDef defines a public type used by authflow APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   authflow.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by authflow APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   authflow.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the flow engine.
var CounterDefs = []CounterDef{
	{ID: authflow.MetricIdentifyExists, Name: "authflow_identify_exists_total", Help: "Identifier checks resolving to an existing account."},
	{ID: authflow.MetricIdentifyNotFound, Name: "authflow_identify_not_found_total", Help: "Identifier checks resolving to no account."},
	{ID: authflow.MetricIdentifyFailure, Name: "authflow_identify_failure_total", Help: "Identifier checks that failed at the transport or server."},
	{ID: authflow.MetricLoginSuccess, Name: "authflow_login_success_total", Help: "Successful login attempts."},
	{ID: authflow.MetricLoginFailure, Name: "authflow_login_failure_total", Help: "Failed login attempts."},
	{ID: authflow.MetricResetCodeRequested, Name: "authflow_reset_code_requested_total", Help: "Verification codes dispatched for password reset."},
	{ID: authflow.MetricResetCodeDeliveryFailed, Name: "authflow_reset_code_delivery_failed_total", Help: "Verification code requests the server declined to send."},
	{ID: authflow.MetricOTPVerifySuccess, Name: "authflow_otp_verify_success_total", Help: "Successful verification code submissions."},
	{ID: authflow.MetricOTPVerifyFailure, Name: "authflow_otp_verify_failure_total", Help: "Failed verification code submissions."},
	{ID: authflow.MetricResetSuccess, Name: "authflow_reset_success_total", Help: "Successful password resets."},
	{ID: authflow.MetricResetFailure, Name: "authflow_reset_failure_total", Help: "Failed password resets."},
	{ID: authflow.MetricSessionPersisted, Name: "authflow_session_persisted_total", Help: "Sessions written to the configured store."},
	{ID: authflow.MetricSessionPurged, Name: "authflow_session_purged_total", Help: "Sessions removed from the configured store."},
	{ID: authflow.MetricSessionRestored, Name: "authflow_session_restored_total", Help: "Sessions restored from the configured store."},
	{ID: authflow.MetricSessionExpired, Name: "authflow_session_expired_total", Help: "Restore attempts rejected for an expired token."},
	{ID: authflow.MetricFlowCancelled, Name: "authflow_flow_cancelled_total", Help: "Flows abandoned by backing out of the first step."},
	{ID: authflow.MetricUnauthorizedPurge, Name: "authflow_unauthorized_purge_total", Help: "Session purges triggered by an unauthorized server answer."},
}

// HistogramDefs is an exported constant or variable used by the flow engine.
var HistogramDefs = []HistogramDef{
	{ID: authflow.MetricRequestLatency, Name: "authflow_request_latency_seconds", Help: "Flow step request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the flow engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the flow engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
