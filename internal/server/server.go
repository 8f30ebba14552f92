// Package server exposes the odds engine over WebSocket: clients send
// JSON queries for (player total, dealer upcard) pairs and receive the
// engine's stand/hit/optimal probabilities.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// Server is the WebSocket odds server.
type Server struct {
	config      *Config
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	clock       quartz.Clock
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer creates a server from config. Pass quartz.NewReal() outside
// of tests.
func NewServer(config *Config, logger *log.Logger, clock quartz.Clock) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		clock:       clock,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Handler returns the HTTP handler serving /ws and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start runs the connection registry and listens on the configured
// address, blocking until the listener fails.
func (s *Server) Start() error {
	go s.run()
	s.logger.Info("starting odds server", "addr", s.config.Server.Address)
	return http.ListenAndServe(s.config.Server.Address, s.Handler())
}

// Stop closes every connection and stops the registry.
func (s *Server) Stop() error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()
	return nil
}

// run handles connection lifecycle.
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			delete(s.connections, conn)
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn := NewConnection(ws, s.config.EngineRules(), s.logger, s.clock, s.config.IdleTimeout())
	conn.onClose = func(c *Connection) {
		select {
		case s.unregister <- c:
		case <-s.ctx.Done():
		}
	}

	select {
	case s.register <- conn:
	case <-s.ctx.Done():
		_ = ws.Close()
		return
	}
	conn.Start()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
