package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Config carries the dial parameters for one stream.
type Config struct {
	URL              string
	HandshakeTimeout time.Duration
	PingInterval     time.Duration
}

// Event is one server-pushed message. Payload is left raw so callers can
// decode per Type.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Stream is a live websocket connection delivering server events. Close it
// when the session ends; the events channel closes once the read loop
// stops.
type Stream struct {
	conn   *websocket.Conn
	events chan Event

	mu      sync.Mutex
	err     error
	done    chan struct{}
	closeFn sync.Once
}

// Dial opens the stream, authenticating the handshake with the bearer
// token.
func Dial(ctx context.Context, cfg Config, token string) (*Stream, error) {
	if cfg.URL == "" {
		return nil, errors.New("realtime url is required")
	}
	if token == "" {
		return nil, errors.New("bearer token is required")
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.HandshakeTimeout,
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := dialer.DialContext(ctx, cfg.URL, header)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	if resp != nil {
		resp.Body.Close()
	}

	s := &Stream{
		conn:   conn,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}

	go s.readLoop()
	if cfg.PingInterval > 0 {
		go s.pingLoop(cfg.PingInterval)
	}

	return s, nil
}

// Events returns the channel of server-pushed events. The channel closes
// when the connection drops or the stream is closed.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Err reports why the stream stopped, nil for a clean close.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close tears the connection down. Safe to call more than once.
func (s *Stream) Close() error {
	var err error
	s.closeFn.Do(func() {
		close(s.done)
		_ = s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		err = s.conn.Close()
	})
	return err
}

func (s *Stream) readLoop() {
	defer close(s.events)

	for {
		var event Event
		if err := s.conn.ReadJSON(&event); err != nil {
			select {
			case <-s.done:
				// Closed locally; not an error.
			default:
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.setErr(err)
				}
			}
			return
		}

		select {
		case s.events <- event:
		case <-s.done:
			return
		}
	}
}

func (s *Stream) pingLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(interval / 2)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}
