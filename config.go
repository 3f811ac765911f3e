package authflow

import (
	"errors"
	"net/url"
	"time"
)

// Config defines a public type used by authflow APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API           APIConfig
	Classifier    ClassifierConfig
	Login         LoginConfig
	PasswordReset PasswordResetConfig
	Session       SessionConfig
	Realtime      RealtimeConfig
	Audit         AuditConfig
	Metrics       MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by authflow APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
CLASSIFIER CONFIG
====================================
*/

// ClassifierConfig defines a public type used by authflow APIs.
//
// ClassifierConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ClassifierConfig struct {
	// DefaultRegion is the ISO 3166-1 alpha-2 country used as the default
	// calling region when parsing bare national phone numbers.
	DefaultRegion string
}

// LoginConfig defines a public type used by authflow APIs.
//
// LoginConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginConfig struct {
	MinPasswordLength int
}

// PasswordResetConfig defines a public type used by authflow APIs.
//
// PasswordResetConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordResetConfig struct {
	// SuccessMessage is the literal the reset-password endpoint echoes on
	// success. Any other message is treated as a rejected reset.
	SuccessMessage string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by authflow APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// StorageKey names the slot the session is persisted under (file name
	// stem for the file store, redis key for the redis store).
	StorageKey string
}

// RealtimeConfig defines a public type used by authflow APIs.
//
// RealtimeConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RealtimeConfig struct {
	Enabled          bool
	URL              string
	HandshakeTimeout time.Duration
	PingInterval     time.Duration
}

// AuditConfig defines a public type used by authflow APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by authflow APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultResetSuccessMessage is the literal the remote reset-password
// endpoint returns on success.
const DefaultResetSuccessMessage = "Password reset successfully"

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:   15 * time.Second,
			UserAgent: "authflow-go",
		},
		Classifier: ClassifierConfig{
			DefaultRegion: "US",
		},
		Login: LoginConfig{
			MinPasswordLength: 8,
		},
		PasswordReset: PasswordResetConfig{
			SuccessMessage: DefaultResetSuccessMessage,
		},
		Session: SessionConfig{
			StorageKey: "authflow.session",
		},
		Realtime: RealtimeConfig{
			Enabled:          false,
			HandshakeTimeout: 10 * time.Second,
			PingInterval:     30 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// API
	if c.API.BaseURL == "" {
		return errors.New("API BaseURL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("API BaseURL must be an absolute http(s) URL")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API Timeout must be > 0")
	}

	// Classifier
	if len(c.Classifier.DefaultRegion) != 2 {
		return errors.New("Classifier DefaultRegion must be a 2-letter region code")
	}

	// Login
	if c.Login.MinPasswordLength < 8 {
		return errors.New("Login MinPasswordLength must be >= 8")
	}

	// Password reset
	if c.PasswordReset.SuccessMessage == "" {
		return errors.New("PasswordReset SuccessMessage is required")
	}

	// Session
	if c.Session.StorageKey == "" {
		return errors.New("Session StorageKey is required")
	}

	// Realtime
	if c.Realtime.Enabled {
		if c.Realtime.URL == "" {
			return errors.New("Realtime URL is required when realtime is enabled")
		}
		wu, err := url.Parse(c.Realtime.URL)
		if err != nil || (wu.Scheme != "ws" && wu.Scheme != "wss") || wu.Host == "" {
			return errors.New("Realtime URL must be an absolute ws(s) URL")
		}
		if c.Realtime.HandshakeTimeout <= 0 {
			return errors.New("Realtime HandshakeTimeout must be > 0")
		}
		if c.Realtime.PingInterval <= 0 {
			return errors.New("Realtime PingInterval must be > 0")
		}
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit is enabled")
	}

	return nil
}
