package authflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func resetAPIServer(t *testing.T, emailSent, codeValid bool, resetMessage string) http.Handler {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/forget-password", func(w http.ResponseWriter, r *http.Request) {
		if emailSent {
			writeJSON(t, w, http.StatusOK, `{"data":{"isEmailSent":true}}`)
			return
		}
		writeJSON(t, w, http.StatusOK, `{"data":{"isEmailSent":false}}`)
	})
	mux.HandleFunc("/auth/password/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Identifier string `json:"identifier"`
			Token      string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
			writeJSON(t, w, http.StatusBadRequest, `{"message":"bad payload"}`)
			return
		}
		if codeValid {
			writeJSON(t, w, http.StatusOK, `{"data":{"isValid":true,"resetToken":"rtok-1"}}`)
			return
		}
		writeJSON(t, w, http.StatusOK, `{"data":{"isValid":false,"resetToken":""}}`)
	})
	mux.HandleFunc("/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ResetToken  string `json:"reset_token"`
			NewPassword string `json:"new_password"`
			Identifier  string `json:"identifier"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ResetToken != "rtok-1" {
			writeJSON(t, w, http.StatusBadRequest, `{"message":"invalid reset token"}`)
			return
		}
		writeJSON(t, w, http.StatusOK, `{"message":"`+resetMessage+`"}`)
	})
	return mux
}

func TestPasswordResetFlowHappyPath(t *testing.T) {
	engine, _ := newTestEngine(t, resetAPIServer(t, true, true, DefaultResetSuccessMessage))
	flow := engine.NewPasswordResetFlow()
	ctx := context.Background()

	if flow.Step() != ResetStepFindAccount {
		t.Fatalf("initial step = %v", flow.Step())
	}

	flow.SetIdentifier("user@example.com")
	if !flow.NextEnabled() {
		t.Fatal("find-account gate closed for valid email")
	}
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("find account: %v", err)
	}
	if flow.Step() != ResetStepVerifyCode {
		t.Fatalf("step = %v, want verify-code", flow.Step())
	}
	if flow.NextEnabled() {
		t.Fatal("verify-code gate open with no code")
	}

	flow.SetCode("123456")
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("verify code: %v", err)
	}
	if flow.Step() != ResetStepNewPassword {
		t.Fatalf("step = %v, want new-password", flow.Step())
	}

	flow.SetNewPassword("brandnewpass1")
	if flow.NextEnabled() {
		t.Fatal("gate open without confirmation")
	}
	flow.SetConfirmation("brandnewpass1")
	if !flow.NextEnabled() {
		t.Fatal("gate closed with matching entries")
	}

	if err := flow.Next(ctx); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if !flow.Done() || flow.Step() != ResetStepDone {
		t.Fatal("flow did not reach the terminal step")
	}
	if err := flow.Next(ctx); !errors.Is(err, ErrFlowCompleted) {
		t.Fatalf("Next on terminal step = %v", err)
	}
	if got := engine.MetricsSnapshot().Counters[MetricResetSuccess]; got != 1 {
		t.Fatalf("reset success counter = %d", got)
	}
}

func TestPasswordResetFlowCodeNotSent(t *testing.T) {
	engine, _ := newTestEngine(t, resetAPIServer(t, false, true, DefaultResetSuccessMessage))
	flow := engine.NewPasswordResetFlow()

	flow.SetIdentifier("user@example.com")
	err := flow.Next(context.Background())
	if !errors.Is(err, ErrCodeDelivery) {
		t.Fatalf("Next = %v, want ErrCodeDelivery", err)
	}
	if flow.Step() != ResetStepFindAccount {
		t.Fatal("flow advanced although no code was sent")
	}
	if !flow.NextEnabled() {
		t.Fatal("gate must stay open for retry")
	}
}

func TestPasswordResetFlowInvalidCode(t *testing.T) {
	engine, _ := newTestEngine(t, resetAPIServer(t, true, false, DefaultResetSuccessMessage))
	flow := engine.NewPasswordResetFlow()
	ctx := context.Background()

	flow.SetIdentifier("user@example.com")
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("find account: %v", err)
	}

	flow.SetCode("000000")
	if err := flow.Next(ctx); !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("Next = %v, want ErrCodeInvalid", err)
	}
	if flow.Step() != ResetStepVerifyCode {
		t.Fatal("flow advanced on an invalid code")
	}
	if got := engine.MetricsSnapshot().Counters[MetricOTPVerifyFailure]; got != 1 {
		t.Fatalf("otp failure counter = %d", got)
	}
}

func TestPasswordResetFlowRejectedByMessage(t *testing.T) {
	// The reset endpoint signals success only by echoing the configured
	// literal; anything else is a rejection even with a 2xx status.
	engine, _ := newTestEngine(t, resetAPIServer(t, true, true, "Token expired"))
	flow := engine.NewPasswordResetFlow()
	ctx := context.Background()

	flow.SetIdentifier("user@example.com")
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("find account: %v", err)
	}
	flow.SetCode("123456")
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("verify code: %v", err)
	}
	flow.SetNewPassword("brandnewpass1")
	flow.SetConfirmation("brandnewpass1")

	if err := flow.Next(ctx); !errors.Is(err, ErrResetRejected) {
		t.Fatalf("Next = %v, want ErrResetRejected", err)
	}
	if flow.Done() {
		t.Fatal("flow completed despite the rejection")
	}
}

func TestPasswordResetFlowBackNavigation(t *testing.T) {
	engine, _ := newTestEngine(t, resetAPIServer(t, true, true, DefaultResetSuccessMessage))
	flow := engine.NewPasswordResetFlow()
	ctx := context.Background()

	if err := flow.Back(); !errors.Is(err, ErrBackDisabled) {
		t.Fatalf("Back on first step = %v, want ErrBackDisabled", err)
	}

	flow.SetIdentifier("jack_dorsey")
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("find account: %v", err)
	}
	flow.SetCode("123456")
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("verify code: %v", err)
	}

	if err := flow.Back(); err != nil {
		t.Fatalf("back from new-password: %v", err)
	}
	if flow.Step() != ResetStepVerifyCode {
		t.Fatalf("step after back = %v", flow.Step())
	}
	// The code survives going back one step; its gate reopens from it.
	if !flow.NextEnabled() {
		t.Fatal("verify-code gate closed after back")
	}

	if err := flow.Back(); err != nil {
		t.Fatalf("back from verify-code: %v", err)
	}
	if flow.Step() != ResetStepFindAccount {
		t.Fatalf("step after second back = %v", flow.Step())
	}
	if !flow.NextEnabled() {
		t.Fatal("find-account gate closed after back with retained identifier")
	}
}

func TestPasswordResetFlowMismatchGate(t *testing.T) {
	engine, _ := newTestEngine(t, resetAPIServer(t, true, true, DefaultResetSuccessMessage))
	flow := engine.NewPasswordResetFlow()
	ctx := context.Background()

	flow.SetIdentifier("user@example.com")
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("find account: %v", err)
	}
	flow.SetCode("123456")
	if err := flow.Next(ctx); err != nil {
		t.Fatalf("verify code: %v", err)
	}

	flow.SetNewPassword("brandnewpass1")
	flow.SetConfirmation("differentpass1")
	if flow.NextEnabled() {
		t.Fatal("gate open with mismatched confirmation")
	}
	if err := flow.Next(ctx); !errors.Is(err, ErrNextDisabled) {
		t.Fatalf("Next with mismatch = %v", err)
	}
}
