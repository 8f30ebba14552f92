package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjackodds/internal/engine"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Connection wraps one WebSocket client. Each connection keeps its own
// calculator cache, so concurrent clients never share memo state.
type Connection struct {
	conn        *websocket.Conn
	send        chan any
	logger      *log.Logger
	rules       engine.Rules
	calcs       map[int]*engine.Calculator
	clock       quartz.Clock
	idleTimeout time.Duration
	idleTimer   *quartz.Timer
	idleMu      sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
	onClose     func(*Connection)
}

// NewConnection creates a connection wrapper around an upgraded socket.
func NewConnection(conn *websocket.Conn, rules engine.Rules, logger *log.Logger, clock quartz.Clock, idleTimeout time.Duration) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:        conn,
		send:        make(chan any, 16),
		logger:      logger.WithPrefix("conn"),
		rules:       rules,
		calcs:       make(map[int]*engine.Calculator),
		clock:       clock,
		idleTimeout: idleTimeout,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	c.touch()
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down. Safe to call more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.stopIdleTimer()
		err = c.conn.Close()
		if c.onClose != nil {
			c.onClose(c)
		}
	})
	return err
}

// touch restarts the idle countdown. Runs on every received message.
func (c *Connection) touch() {
	if c.idleTimeout <= 0 {
		return
	}
	c.idleMu.Lock()
	defer c.idleMu.Unlock()
	if c.idleTimer != nil {
		c.idleTimer.Stop()
	}
	c.idleTimer = c.clock.AfterFunc(c.idleTimeout, func() {
		c.logger.Info("closing idle connection", "idle_timeout", c.idleTimeout)
		_ = c.Close()
	})
}

func (c *Connection) stopIdleTimer() {
	c.idleMu.Lock()
	defer c.idleMu.Unlock()
	if c.idleTimer != nil {
		c.idleTimer.Stop()
		c.idleTimer = nil
	}
}

// Send queues a message for the write pump.
func (c *Connection) Send(msg any) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
	}
}

// handleQuery evaluates one query. Malformed upcards are not an error
// here: the engine's silent zero report is the contract.
func (c *Connection) handleQuery(q Query) *OptionsMessage {
	if q.DealerUpcard < 1 || q.DealerUpcard > c.rules.MaxCard {
		return NewOptionsMessage(q.PlayerTotal, q.DealerUpcard, engine.Options{})
	}
	calc, ok := c.calcs[q.DealerUpcard]
	if !ok {
		calc = engine.NewCalculator(c.rules, q.DealerUpcard)
		c.calcs[q.DealerUpcard] = calc
	}
	return NewOptionsMessage(q.PlayerTotal, q.DealerUpcard, calc.Options(q.PlayerTotal))
}

// readPump handles incoming messages until the peer goes away.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read error", "error", err)
			}
			return
		}
		c.touch()

		var q Query
		if err := json.Unmarshal(data, &q); err != nil {
			c.Send(NewErrorMessage("invalid json"))
			continue
		}
		if q.Type != TypeQuery {
			c.Send(NewErrorMessage("unknown message type: " + q.Type))
			continue
		}
		if q.PlayerTotal < 0 {
			c.Send(NewErrorMessage("player_total out of range"))
			continue
		}
		c.Send(c.handleQuery(q))
	}
}

// writePump serializes outgoing messages and keeps the peer alive with
// pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("write error", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}
