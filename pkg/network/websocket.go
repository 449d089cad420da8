package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/ghist/pkg/game/types"
	"github.com/cbodonnell/ghist/pkg/log"
	"github.com/cbodonnell/ghist/pkg/messages"
	"github.com/cbodonnell/ghist/pkg/metrics"
	"github.com/cbodonnell/ghist/pkg/queue"
	"github.com/cbodonnell/ghist/pkg/sessions"
	"github.com/cbodonnell/ghist/pkg/state"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Game is the part of the game manager driven by connections.
type Game interface {
	Connect(pusher sessions.Pusher) uint32
	Disconnect(clientID uint32)
	HandleCommand(clientID uint32, command types.Command)
}

// WSServer represents a WebSocket server.
type WSServer struct {
	port              int
	tls               *TLSConfig
	game              Game
	codec             messages.Codec
	metrics           *metrics.Metrics
	stateManager      state.StateManager
	outboundQueueSize int
	upgrader          websocket.Upgrader
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port int
	// TLS is optional.
	TLS   *TLSConfig
	Game  Game
	Codec messages.Codec
	// Metrics is optional and served on /metrics.
	Metrics *metrics.Metrics
	// StateManager is optional and served on /state.
	StateManager      state.StateManager
	OutboundQueueSize int
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	queueSize := opts.OutboundQueueSize
	if queueSize <= 0 {
		queueSize = queue.QueueBufferSize
	}
	return &WSServer{
		port:              opts.Port,
		tls:               opts.TLS,
		game:              opts.Game,
		codec:             opts.Codec,
		metrics:           opts.Metrics,
		stateManager:      opts.StateManager,
		outboundQueueSize: queueSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  messages.MessageBufferSize,
			WriteBufferSize: messages.MessageBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the routes served by the server.
func (s *WSServer) Handler(ctx context.Context) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.handleUpgrade(ctx, w, r)
	}).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	return r
}

// Start serves until ctx is done.
func (s *WSServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return nil
		}
		return fmt.Errorf("websocket server error: %v", err)
	}
	return nil
}

func (s *WSServer) handleUpgrade(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket: %v", err)
		return
	}
	log.Debug("New WebSocket connection from %s", conn.RemoteAddr().String())
	go s.handleWSConnection(ctx, conn)
}

// handleWSConnection runs one connection from registration to removal.
func (s *WSServer) handleWSConnection(ctx context.Context, conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(ctx)
	client := NewClient(conn, s.codec, s.outboundQueueSize)
	// the welcome frame stays queued until the writer starts
	client.id = s.game.Connect(client)

	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		if err := client.writePump(ctx); err != nil {
			log.Debug("Write loop for client %d stopped: %v", client.id, err)
		}
		// unblocks the reader
		conn.Close()
	}()

	if err := client.readPump(s.game); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
			log.Error("Error reading WebSocket message from client %d: %v", client.id, err)
		}
		log.Trace("Connection closed for client %d", client.id)
	}

	s.game.Disconnect(client.id)
	client.Close()
	cancel()
	<-writeDone
}

func (s *WSServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *WSServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *WSServer) handleState(w http.ResponseWriter, r *http.Request) {
	if s.stateManager == nil {
		http.Error(w, "state is not available", http.StatusNotFound)
		return
	}
	gameState, err := s.stateManager.Get(r.Context())
	if err != nil {
		log.Error("Failed to get game state: %v", err)
		http.Error(w, "failed to get game state", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, gameState)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response: %v", err)
	}
}
