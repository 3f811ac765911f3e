package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:   srv.URL,
		Timeout:   5 * time.Second,
		UserAgent: "authflow-go-test",
		DeviceID:  "device-1",
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/check-identifier", func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"data":true}`))
	})

	client, _ := newTestClient(t, mux)
	client.SetTokenSource(func() string { return "tok-123" })

	if _, err := client.CheckIdentifier(context.Background(), "jack"); err != nil {
		t.Fatalf("check identifier: %v", err)
	}

	if ct := got.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if ua := got.Get("User-Agent"); ua != "authflow-go-test" {
		t.Fatalf("user agent = %q", ua)
	}
	if dev := got.Get("X-Device-ID"); dev != "device-1" {
		t.Fatalf("device header = %q", dev)
	}
	if auth := got.Get("Authorization"); auth != "Bearer tok-123" {
		t.Fatalf("authorization = %q", auth)
	}
}

func TestErrorNormalizationStringMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/check-identifier", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Nope"}`))
	})

	client, _ := newTestClient(t, mux)
	_, err := client.CheckIdentifier(context.Background(), "jack")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err type = %T", err)
	}
	if apiErr.Message != "Nope" || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestErrorNormalizationJoinsMessageArray(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":["password too short","identifier required"]}`))
	})

	client, _ := newTestClient(t, mux)
	_, err := client.Login(context.Background(), LoginRequest{Identifier: "jack", Type: "username", Password: "x"})

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err type = %T", err)
	}
	if apiErr.Message != "password too short, identifier required" {
		t.Fatalf("joined message = %q", apiErr.Message)
	}
}

func TestErrorNormalizationFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/check-identifier", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>gateway timeout</html>`))
	})

	client, _ := newTestClient(t, mux)
	_, err := client.CheckIdentifier(context.Background(), "jack")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err type = %T", err)
	}
	if apiErr.Message != FallbackMessage {
		t.Fatalf("message = %q, want fallback", apiErr.Message)
	}
}

func TestErrorNormalizationTransportFailure(t *testing.T) {
	client, srv := newTestClient(t, http.NewServeMux())
	srv.Close()

	_, err := client.CheckIdentifier(context.Background(), "jack")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err type = %T", err)
	}
	if apiErr.Message == "" || apiErr.Message == FallbackMessage {
		t.Fatalf("transport error text must be surfaced, got %q", apiErr.Message)
	}
	if apiErr.Unwrap() == nil {
		t.Fatal("transport cause must be wrapped")
	}
}

func TestUnauthorizedHookSkipsLoginEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	unauthorized := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Unauthorized"}`))
	}
	mux.HandleFunc("/auth/login", unauthorized)
	mux.HandleFunc("/auth/check-identifier", unauthorized)

	client, _ := newTestClient(t, mux)
	calls := 0
	client.SetUnauthorizedHook(func(context.Context) { calls++ })

	if _, err := client.Login(context.Background(), LoginRequest{Identifier: "jack", Type: "username", Password: "pw"}); err == nil {
		t.Fatal("expected login error")
	}
	if calls != 0 {
		t.Fatal("hook fired for the login endpoint")
	}

	if _, err := client.CheckIdentifier(context.Background(), "jack"); err == nil {
		t.Fatal("expected check error")
	}
	if calls != 1 {
		t.Fatalf("hook calls = %d, want 1", calls)
	}
}

func TestResetPasswordWirePayloadAndLiteral(t *testing.T) {
	var raw map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Write([]byte(`{"message":"Password reset successfully"}`))
	})

	client, _ := newTestClient(t, mux)
	req := ResetPasswordRequest{ResetToken: "rtok", NewPassword: "newpassword1", Identifier: "jack"}

	ok, err := client.ResetPassword(context.Background(), req, "Password reset successfully")
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if !ok {
		t.Fatal("matching literal must report success")
	}

	for _, key := range []string{"reset_token", "new_password", "identifier"} {
		if _, present := raw[key]; !present {
			t.Fatalf("wire payload missing %q: %v", key, raw)
		}
	}

	ok, err = client.ResetPassword(context.Background(), req, "Different literal")
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if ok {
		t.Fatal("non-matching literal must report rejection")
	}
}

func TestVerifyOTPEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/password/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"isValid":true,"resetToken":"rtok-9"}}`))
	})

	client, _ := newTestClient(t, mux)
	res, err := client.VerifyOTP(context.Background(), "jack", "123456")
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if !res.Valid || res.ResetToken != "rtok-9" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestForgetPasswordEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/forget-password", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"isEmailSent":false}}`))
	})

	client, _ := newTestClient(t, mux)
	sent, err := client.ForgetPassword(context.Background(), "jack")
	if err != nil {
		t.Fatalf("forget password: %v", err)
	}
	if sent {
		t.Fatal("isEmailSent=false must come back false")
	}
}
