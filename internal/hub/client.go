package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pdrhp/matchmovie/internal/model"
)

var (
	ErrNotConnected = errors.New("not connected to hub")
	ErrDisconnected = errors.New("disconnected: retry budget exhausted")
	ErrConnectFail  = errors.New("could not connect to hub")
)

const (
	// Reconnect delays follow min(1000 * 2^attempt, 30000) ms. After
	// maxReconnectAttempts failed retries the client goes terminal and
	// requires a full manual reconnect.
	baseReconnectDelay   = time.Second
	maxReconnectDelay    = 30 * time.Second
	maxReconnectAttempts = 3

	connectTimeout = 10 * time.Second
)

func reconnectDelay(attempt int) time.Duration {
	d := baseReconnectDelay << attempt
	if d > maxReconnectDelay {
		return maxReconnectDelay
	}
	return d
}

// Client owns the long-lived channel to the hub: it dials, reconnects
// with bounded backoff, validates and sends outbound commands and is the
// only writer of the local Session mirror. Construct with New, connect
// once, tear down with Close.
type Client struct {
	url      string
	clientID string
	dialer   *websocket.Dialer
	logger   *slog.Logger

	sleep func(time.Duration) // swapped in tests

	mu           sync.RWMutex
	conn         *websocket.Conn
	connected    bool
	terminal     bool
	connectionID string
	session      *model.Session
	lastErr      error
	finishSent   bool

	updates   chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

func New(url string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:      url,
		clientID: uuid.New().String(),
		dialer:   websocket.DefaultDialer,
		logger:   logger,
		sleep:    time.Sleep,
		updates:  make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
}

// Connect dials the hub and waits for its Connected handshake event.
// On success the inbound read loop starts and Connected() flips true.
func (c *Client) Connect(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.terminal = false
	c.lastErr = nil
	c.mu.Unlock()

	go c.readLoop(conn)
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, _, err := c.dialer.DialContext(dialCtx, c.url+"?client="+c.clientID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectFail, err)
	}

	// The hub's first frame carries our connection id.
	conn.SetReadDeadline(time.Now().Add(connectTimeout))
	var ev Event
	if err := conn.ReadJSON(&ev); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: handshake read: %w", ErrConnectFail, err)
	}
	conn.SetReadDeadline(time.Time{})

	if ev.Type != EventConnected {
		conn.Close()
		return nil, fmt.Errorf("%w: unexpected handshake event %q", ErrConnectFail, ev.Type)
	}
	var payload ConnectedPayload
	if err := decode(ev.Payload, &payload); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: handshake payload: %w", ErrConnectFail, err)
	}

	c.mu.Lock()
	c.connectionID = payload.ConnectionID
	c.mu.Unlock()

	c.logger.Info("connected to hub", "connection_id", payload.ConnectionID)
	return conn, nil
}

// readLoop applies inbound events in delivery order. It is the single
// writer of the session mirror. On an unexpected drop it hands off to
// the reconnect loop.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			select {
			case <-c.closed:
				return
			default:
			}

			c.logger.Warn("hub connection dropped", "error", err)
			c.markDisconnected(nil)
			c.reconnect()
			return
		}
		c.apply(ev)
	}
}

func (c *Client) reconnect() {
	for attempt := 0; attempt < maxReconnectAttempts; attempt++ {
		delay := reconnectDelay(attempt)
		c.logger.Info("reconnecting to hub", "attempt", attempt, "delay", delay)
		c.sleep(delay)

		select {
		case <-c.closed:
			return
		default:
		}

		conn, err := c.dial(context.Background())
		if err != nil {
			c.logger.Warn("reconnect attempt failed", "attempt", attempt, "error", err)
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.connected = true
		c.lastErr = nil
		c.mu.Unlock()
		c.signal()

		c.readLoop(conn)
		return
	}

	c.logger.Error("reconnect budget exhausted, going terminal")
	c.markDisconnected(ErrDisconnected)
	c.mu.Lock()
	c.terminal = true
	c.mu.Unlock()
	c.signal()
}

func (c *Client) markDisconnected(err error) {
	c.mu.Lock()
	c.connected = false
	if err != nil {
		c.lastErr = err
	}
	c.mu.Unlock()
	c.signal()
}

// Close tears the connection down and stops any reconnection.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		c.connected = false
		c.mu.Unlock()
	})
}

func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Terminal reports whether the retry budget is spent and a manual
// reconnect is required.
func (c *Client) Terminal() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.terminal
}

func (c *Client) ConnectionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connectionID
}

// Session returns a deep copy of the current mirror, or nil when no
// session is active.
func (c *Client) Session() *model.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Clone()
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// IsHost reports whether this connection created the active session.
func (c *Client) IsHost() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil && c.session.IsHost(c.connectionID)
}

// Updates signals after every reconciled event and connectivity change.
// Signals coalesce; readers re-read the snapshot.
func (c *Client) Updates() <-chan struct{} {
	return c.updates
}

func (c *Client) signal() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

func (c *Client) send(cmd command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.WriteJSON(cmd); err != nil {
		c.lastErr = fmt.Errorf("send %s: %w", cmd.Type, err)
		return c.lastErr
	}
	return nil
}
