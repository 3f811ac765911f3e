package authflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chattr-app/authflow/session"
)

func TestFlowEmitsAuditEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/check-identifier", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"data":false}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	sink := NewChannelSink(16)
	engine, err := New().
		WithBaseURL(srv.URL).
		WithSessionStore(session.NewMemoryStore()).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(engine.Close)

	flow := engine.NewLoginFlow()
	flow.SetIdentifier("ghost_user")
	if err := flow.Next(context.Background()); err == nil {
		t.Fatal("expected not-found error")
	}

	select {
	case event := <-sink.Events():
		if event.EventType != "login_identify" {
			t.Fatalf("event type = %q", event.EventType)
		}
		if event.Flow != "login" || event.Success {
			t.Fatalf("unexpected event: %+v", event)
		}
		if event.DeviceID != engine.DeviceID() {
			t.Fatal("event missing the engine device id")
		}
		if event.Metadata["identifier"] != "ghost_user" {
			t.Fatalf("event metadata = %v", event.Metadata)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no audit event emitted")
	}
}

func TestEngineWithoutAuditSinkIsSilent(t *testing.T) {
	engine, _ := newTestEngine(t, http.NewServeMux())
	if engine.AuditDropped() != 0 {
		t.Fatal("audit-disabled engine reported drops")
	}

	// Emitting with audit disabled must not panic.
	engine.emitAudit(context.Background(), auditEventLogout, "session", "", true, nil, nil)
}
