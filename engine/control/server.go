package control

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// serverImpl implements the Server interface.
type serverImpl struct {
	port int

	upgrader websocket.Upgrader
	httpSrv  *http.Server

	// Each connection gets its own write mutex so broadcasts and request
	// replies never interleave on the wire.
	clientsMutex *sync.RWMutex
	clients      map[*websocket.Conn]*sync.Mutex

	dispatchTo Handler
	onError    func(err error)
}

var _ Server = &serverImpl{}

// Server accepts WebSocket connections from browser skins, routes their
// commands to the Handler, and broadcasts state snapshots to all clients.
type Server interface {
	// Run starts the HTTP listener. Blocks until Close is called or the
	// listener fails.
	//
	// Returns:
	//   - error: the listener error, or nil after a clean Close
	Run() error

	// Broadcast sends a state snapshot to every connected client.
	// Clients whose connection has failed are dropped.
	//
	// Parameters:
	//   - snapshot: the state snapshot to send
	Broadcast(snapshot StateSnapshot)

	// ClientCount returns the number of connected clients.
	//
	// Returns:
	//   - int: connected client count
	ClientCount() int

	// Close shuts down the listener and closes all client connections.
	//
	// Returns:
	//   - error: error if shutdown failed
	Close() error
}

// NewServer creates a control Server dispatching to the given handler.
//
// Parameters:
//   - handler: receives validated client commands (must not be nil)
//   - options: functional options for server configuration
//
// Returns:
//   - Server: the newly created server
func NewServer(handler Handler, options ...ServerBuilderOption) Server {
	if handler == nil {
		panic("control: NewServer requires a non-nil Handler")
	}

	s := &serverImpl{
		port: 9910,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local design-tool server; skins are served from file://
				// or a dev server on another port.
				return true
			},
		},
		clientsMutex: &sync.RWMutex{},
		clients:      make(map[*websocket.Conn]*sync.Mutex),
		dispatchTo:   handler,
	}

	for _, opt := range options {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.httpSrv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	return s
}

func (s *serverImpl) Run() error {
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *serverImpl) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.reportError(fmt.Errorf("control upgrade: %w", err))
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMutex.Lock()
	s.clients[conn] = connMutex
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, conn)
		s.clientsMutex.Unlock()
	}()

	// New clients get an immediate snapshot so skins can render controls
	// without asking.
	s.send(conn, connMutex, s.dispatchTo.Snapshot())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		reply, err := dispatch(data, s.dispatchTo)
		if err != nil {
			s.reportError(err)
			continue
		}
		if reply != nil {
			s.send(conn, connMutex, *reply)
		}
	}
}

func (s *serverImpl) Broadcast(snapshot StateSnapshot) {
	s.clientsMutex.RLock()
	var failed []*websocket.Conn
	for conn, mutex := range s.clients {
		mutex.Lock()
		err := conn.WriteJSON(snapshot)
		mutex.Unlock()
		if err != nil {
			conn.Close()
			failed = append(failed, conn)
		}
	}
	s.clientsMutex.RUnlock()

	if len(failed) > 0 {
		s.clientsMutex.Lock()
		for _, conn := range failed {
			delete(s.clients, conn)
		}
		s.clientsMutex.Unlock()
	}
}

func (s *serverImpl) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

func (s *serverImpl) Close() error {
	s.clientsMutex.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]*sync.Mutex)
	s.clientsMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

// send writes a snapshot to one client under its write mutex.
func (s *serverImpl) send(conn *websocket.Conn, mutex *sync.Mutex, snapshot StateSnapshot) {
	mutex.Lock()
	defer mutex.Unlock()
	if err := conn.WriteJSON(snapshot); err != nil {
		s.reportError(fmt.Errorf("control write: %w", err))
	}
}

// reportError forwards an error to the configured sink, if any.
func (s *serverImpl) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}
