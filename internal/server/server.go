package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/greenfelt/holdem/internal/game"
	"github.com/greenfelt/holdem/internal/room"
)

// Server accepts WebSocket clients and routes their commands to the room
// manager. Outbound room state is personalized per connection so hole
// cards only ever travel to their owner.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	httpServer  *http.Server

	manager *room.Manager
	clock   quartz.Clock

	tableStakes game.Stakes
	turnTimeout time.Duration
	streetPause time.Duration

	timersMu     sync.Mutex
	turnTimers   map[string]*quartz.Timer
	streetTimers map[string]*quartz.Timer
}

// NewServer creates a WebSocket server over the given room manager. The
// clock drives the turn and street timers; pass quartz.NewMock in tests.
func NewServer(cfg *Config, manager *room.Manager, clock quartz.Clock, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		addr: cfg.Address(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		manager:      manager,
		clock:        clock,
		tableStakes:  cfg.Table.Stakes(),
		turnTimeout:  cfg.Table.TurnTimeout(),
		streetPause:  cfg.Table.StreetPause(),
		turnTimers:   make(map[string]*quartz.Timer),
		streetTimers: make(map[string]*quartz.Timer),
	}
}

// Start runs the server until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{Addr: s.addr, Handler: mux}

	s.logger.Info("Starting WebSocket server", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the listener, all timers and all client connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	s.stopAllTimers()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close()
			}
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", total)

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s)
	s.register <- client
	client.Start()

	go func() {
		<-client.ctx.Done()
		select {
		case s.unregister <- client:
		case <-s.ctx.Done():
		}
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// BroadcastRoomState sends every connection in the room its own view of
// the current state.
func (s *Server) BroadcastRoomState(rm room.Room) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.GetRoom() != rm.ID {
			continue
		}
		msg, err := NewMessage(MessageTypeRoomState, buildRoomState(rm, conn.GetSeat()))
		if err != nil {
			s.logger.Error("Failed to build room state message", "error", err)
			continue
		}
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send room state", "error", err, "room", rm.ID)
		}
	}
}

// BroadcastToRoom sends the same message to every connection in the room.
func (s *Server) BroadcastToRoom(roomID string, msg *Message) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for conn := range s.connections {
		if conn.GetRoom() != roomID {
			continue
		}
		if err := conn.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send message", "error", err, "room", roomID)
		}
	}
}
