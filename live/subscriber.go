// Package live subscribes to the service's websocket event stream and
// republishes entity-change notices on the in-process bus, so mutations made
// by other clients trigger the same reload fan-out as local ones.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/GoCodeAlone/workdesk/bus"
	"github.com/GoCodeAlone/workdesk/resource"
)

// SubscriberConfig configures a Subscriber.
type SubscriberConfig struct {
	// URL is the websocket endpoint, e.g. "wss://deskd.example.com/api/v1/events".
	URL string
	// Token is sent as a bearer Authorization header on the handshake.
	Token string
	// InitialBackoff is the first reconnect delay. Defaults to 1s.
	InitialBackoff time.Duration
	// MaxBackoff caps the reconnect delay. Defaults to 30s.
	MaxBackoff time.Duration
	Logger     *slog.Logger
}

// Subscriber maintains a websocket connection to the event stream,
// reconnecting with capped exponential backoff.
type Subscriber struct {
	cfg SubscriberConfig
	bus *bus.Bus

	// dial is swappable for tests.
	dial func(ctx context.Context) (*websocket.Conn, error)
}

// NewSubscriber creates a Subscriber publishing to b.
func NewSubscriber(cfg SubscriberConfig, b *bus.Bus) *Subscriber {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &Subscriber{cfg: cfg, bus: b}
	s.dial = s.dialWebsocket
	return s
}

func (s *Subscriber) dialWebsocket(ctx context.Context) (*websocket.Conn, error) {
	header := map[string][]string{}
	if s.cfg.Token != "" {
		header["Authorization"] = []string{"Bearer " + s.cfg.Token}
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, s.cfg.URL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn, err
}

// Run connects and consumes events until ctx is cancelled. Connection
// failures and dropped connections are retried with backoff; Run only
// returns on cancellation.
func (s *Subscriber) Run(ctx context.Context) {
	backoff := s.cfg.InitialBackoff
	for {
		if ctx.Err() != nil {
			return
		}
		conn, err := s.dial(ctx)
		if err != nil {
			s.cfg.Logger.Warn("event stream connect failed", "url", s.cfg.URL, "error", err)
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, s.cfg.MaxBackoff)
			continue
		}

		s.cfg.Logger.Info("event stream connected", "url", s.cfg.URL)
		if s.consume(ctx, conn) {
			backoff = s.cfg.InitialBackoff
		} else {
			// Connection dropped before delivering anything; keep backing off
			// so a flapping server is not hammered.
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, s.cfg.MaxBackoff)
		}
	}
}

// consume reads events from one connection until it drops or ctx cancels.
// It reports whether at least one message was received.
func (s *Subscriber) consume(ctx context.Context, conn *websocket.Conn) bool {
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close() // unblocks ReadMessage
		case <-done:
		}
	}()

	received := false
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				s.cfg.Logger.Warn("event stream dropped", "error", err)
			}
			return received
		}
		received = true

		var m resource.Mutation
		if err := json.Unmarshal(data, &m); err != nil || m.Kind == "" {
			s.cfg.Logger.Debug("ignoring malformed event", "payload", string(data))
			continue
		}
		s.bus.Publish(bus.TopicEntityMutated, m)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
