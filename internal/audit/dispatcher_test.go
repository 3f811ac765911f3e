package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *Dispatcher
	d.Emit(context.Background(), Event{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reported drops")
	}
}

func TestDispatcherDefaultsNilSinkAndBuffer(t *testing.T) {
	d := NewDispatcher(nil, 0, false)
	defer d.Close()

	// A nil sink degrades to NoOpSink; emitting must not panic.
	d.Emit(context.Background(), Event{EventType: "logout"})
}

func TestDispatcherDeliversToSink(t *testing.T) {
	sink := NewChannelSink(4)
	d := NewDispatcher(sink, 4, false)
	defer d.Close()

	d.Emit(context.Background(), Event{EventType: "login_submit", Success: true})

	select {
	case event := <-sink.Events():
		if event.EventType != "login_submit" || !event.Success {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event never reached the sink")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	sink := sinkFunc(func(context.Context, Event) { <-block })

	d := NewDispatcher(sink, 1, true)
	defer func() {
		close(block)
		d.Close()
	}()

	// First event occupies the worker, second fills the buffer, the rest
	// must be counted as dropped rather than blocking the caller.
	for i := 0; i < 8; i++ {
		d.Emit(context.Background(), Event{EventType: "login_identify"})
	}

	deadline := time.Now().Add(2 * time.Second)
	for d.Dropped() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no drops recorded under backpressure")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDispatcherDrainsOnClose(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	d := NewDispatcher(sink, 16, false)
	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), Event{EventType: "reset_confirm", Success: true})
	}
	d.Close()

	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	if lines != 5 {
		t.Fatalf("drained %d events, want 5", lines)
	}

	var event Event
	first, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	if err := json.Unmarshal(first, &event); err != nil {
		t.Fatalf("decode drained event: %v", err)
	}
	if event.EventType != "reset_confirm" {
		t.Fatalf("drained event = %+v", event)
	}
}

type sinkFunc func(context.Context, Event)

func (f sinkFunc) Emit(ctx context.Context, event Event) { f(ctx, event) }
