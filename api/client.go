package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	pathCheckIdentifier = "/auth/check-identifier"
	pathLogin           = "/auth/login"
	pathForgetPassword  = "/auth/forget-password"
	pathVerifyOTP       = "/auth/password/verify-otp"
	pathResetPassword   = "/auth/reset-password"
)

// Limit error-body reads so a misbehaving server cannot balloon memory.
const maxErrorBodySize = 64 << 10

// Config defines a public type used by authflow APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	DeviceID  string
}

// Client defines a public type used by authflow APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	config Config
	http   *http.Client

	tokenSource    func() string
	onUnauthorized func(context.Context)
}

// NewClient describes the newclient operation and its observable behavior.
//
// NewClient may return an error when input validation, dependency calls, or security checks fail.
func NewClient(cfg Config, httpClient *http.Client) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api base url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, err
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{config: cfg, http: httpClient}, nil
}

// SetTokenSource installs the bearer-token supplier consulted on every
// authenticated request. A nil source or empty token omits the header.
func (c *Client) SetTokenSource(fn func() string) {
	c.tokenSource = fn
}

// SetUnauthorizedHook installs the callback invoked when any non-login
// endpoint answers 401 or 403. The engine uses it to purge the stored
// token before surfacing the error.
func (c *Client) SetUnauthorizedHook(fn func(context.Context)) {
	c.onUnauthorized = fn
}

// CheckIdentifier asks the server whether an account exists for the
// classified identifier.
func (c *Client) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	var out boolEnvelope
	if err := c.post(ctx, pathCheckIdentifier, identifierDTO{Identifier: identifier}, &out, false); err != nil {
		return false, err
	}
	return out.Data, nil
}

// Login exchanges credentials for an access token and user projection.
// Unauthorized answers here mean bad credentials, not a stale session, so
// the purge hook is deliberately not invoked.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	var out loginEnvelope
	if err := c.post(ctx, pathLogin, mapLoginRequestToDTO(req), &out, true); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: out.Data.AccessToken,
		User:        mapUserFromDTO(out.Data.User),
	}, nil
}

// ForgetPassword requests a verification code for the identifier and
// reports whether the server dispatched it.
func (c *Client) ForgetPassword(ctx context.Context, identifier string) (bool, error) {
	var out forgetPasswordEnvelope
	if err := c.post(ctx, pathForgetPassword, identifierDTO{Identifier: identifier}, &out, false); err != nil {
		return false, err
	}
	return out.Data.IsEmailSent, nil
}

// VerifyOTP submits the received code and, when valid, returns the
// single-use reset token for the final step.
func (c *Client) VerifyOTP(ctx context.Context, identifier, code string) (*OTPVerification, error) {
	var out verifyOTPEnvelope
	if err := c.post(ctx, pathVerifyOTP, verifyOTPRequestDTO{Identifier: identifier, Token: code}, &out, false); err != nil {
		return nil, err
	}

	return &OTPVerification{
		Valid:      out.Data.IsValid,
		ResetToken: out.Data.ResetToken,
	}, nil
}

// ResetPassword performs the final reset call. Success is defined by the
// server echoing successMessage verbatim; any other message is a rejection.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest, successMessage string) (bool, error) {
	var out messageEnvelope
	if err := c.post(ctx, pathResetPassword, mapResetPasswordRequestToDTO(req), &out, false); err != nil {
		return false, err
	}
	return out.Message == successMessage, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any, isLogin bool) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return normalizeError(0, nil, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return normalizeError(0, nil, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if c.config.DeviceID != "" {
		req.Header.Set("X-Device-ID", c.config.DeviceID)
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return normalizeError(0, nil, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if !isLogin && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			if c.onUnauthorized != nil {
				c.onUnauthorized(ctx)
			}
		}
		return normalizeError(resp.StatusCode, errBody, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return normalizeError(resp.StatusCode, nil, err)
	}
	return nil
}
