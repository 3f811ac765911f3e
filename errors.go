package authflow

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the flow engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrNextDisabled is an exported constant or variable used by the flow engine.
	ErrNextDisabled = errors.New("next is not enabled for the current step")
	// ErrBackDisabled is an exported constant or variable used by the flow engine.
	ErrBackDisabled = errors.New("back is not available on the current step")
	// ErrFlowCompleted is an exported constant or variable used by the flow engine.
	ErrFlowCompleted = errors.New("flow already completed")
	// ErrFlowCancelled is an exported constant or variable used by the flow engine.
	ErrFlowCancelled = errors.New("flow cancelled")
	// ErrUserNotFound is an exported constant or variable used by the flow engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrCredentialPayload is an exported constant or variable used by the flow engine.
	ErrCredentialPayload = errors.New("check credentials")
	// ErrCodeDelivery is an exported constant or variable used by the flow engine.
	ErrCodeDelivery = errors.New("verification code could not be sent")
	// ErrCodeInvalid is an exported constant or variable used by the flow engine.
	ErrCodeInvalid = errors.New("invalid verification code")
	// ErrResetRejected is an exported constant or variable used by the flow engine.
	ErrResetRejected = errors.New("password reset rejected")
	// ErrNoSession is an exported constant or variable used by the flow engine.
	ErrNoSession = errors.New("no stored session")
	// ErrSessionExpired is an exported constant or variable used by the flow engine.
	ErrSessionExpired = errors.New("stored session expired")
	// ErrRealtimeDisabled is an exported constant or variable used by the flow engine.
	ErrRealtimeDisabled = errors.New("realtime stream disabled")
)
