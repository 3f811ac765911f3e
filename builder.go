package authflow

import (
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chattr-app/authflow/api"
	"github.com/chattr-app/authflow/internal"
	"github.com/chattr-app/authflow/session"
)

// Builder defines a public type used by authflow APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	httpClient   *http.Client
	sessionStore session.Store
	redis        *redis.Client
	auditSink    AuditSink
	deviceID     string

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
//
// WithBaseURL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithSessionStore describes the withsessionstore operation and its observable behavior.
//
// WithSessionStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSessionStore(store session.Store) *Builder {
	b.sessionStore = store
	return b
}

// WithRedis installs a redis-backed session store keyed by the configured
// storage key. Overrides any store set via WithSessionStore.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithDefaultRegion describes the withdefaultregion operation and its observable behavior.
//
// WithDefaultRegion does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithDefaultRegion(region string) *Builder {
	b.config.Classifier.DefaultRegion = region
	return b
}

// WithTimeout describes the withtimeout operation and its observable behavior.
//
// WithTimeout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.config.API.Timeout = timeout
	return b
}

// WithAuditSink installs the sink and enables audit dispatching.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// WithDeviceID pins the install identifier instead of generating a fresh
// one. Callers persisting the ID across launches should use this.
func (b *Builder) WithDeviceID(id string) *Builder {
	b.deviceID = id
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deviceID := b.deviceID
	if deviceID == "" {
		deviceID = internal.NewDeviceID()
	}

	store := b.sessionStore
	if b.redis != nil {
		store = session.NewRedisStore(b.redis, cfg.Session.StorageKey)
	}
	if store == nil {
		store = session.NewMemoryStore()
	}

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		DeviceID:  deviceID,
	}, b.httpClient)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:       cfg,
		api:          client,
		sessionStore: store,
		deviceID:     deviceID,
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	client.SetTokenSource(engine.bearerToken)
	client.SetUnauthorizedHook(engine.handleUnauthorized)

	b.built = true

	return engine, nil
}
