// Package ws exposes a cube session over websocket and HTTP.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/SeamusWaldron/cubestate"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
	outQueue     = 64
)

// Server broadcasts transitions of one cube session to all connected
// clients and applies the commands they send.
type Server struct {
	cube *cubestate.Session
	log  *log.Logger

	upgrader    websocket.Upgrader
	readTimeout time.Duration

	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewServer creates a server for cube and subscribes it to transitions.
func NewServer(cube *cubestate.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		cube: cube,
		log:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		readTimeout: readTimeout,
		clients: make(map[chan []byte]struct{}),
	}
	cube.OnTransition(s.broadcast)
	return s
}

// Routes returns a mux serving /ws and /api/state.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())
	mux.HandleFunc("/api/state", s.StateHandler())
	return mux
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) snapshot() (StateMsg, error) {
	state, seq := s.cube.Snapshot()
	facelets, err := cubestate.Project(state)
	if err != nil {
		return StateMsg{}, err
	}
	moves := s.cube.Moves()
	notations := make([]string, len(moves))
	for i, m := range moves {
		notations[i] = m.Notation()
	}
	return StateMsg{
		Type:     TypeState,
		Seq:      seq,
		Facelets: facelets,
		Solved:   cubestate.IsSolved(state),
		Moves:    notations,
	}, nil
}

// StateHandler serves the current state as JSON.
func (s *Server) StateHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		msg, err := s.snapshot()
		if err != nil {
			rw.Header().Set("Content-Type", "application/json")
			rw.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(rw).Encode(ErrorMsg{Type: TypeError, Error: err.Error()})
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(msg)
	}
}

func (s *Server) broadcast(t cubestate.Transition) {
	facelets, err := cubestate.Project(t.Next)
	if err != nil {
		s.log.Error("cannot project transition", "seq", t.Seq, "err", err)
		return
	}
	msg := TransitionMsg{
		Type:     TypeTransition,
		Seq:      t.Seq,
		Undo:     t.Undo,
		Reset:    t.Reset,
		Facelets: facelets,
		Solved:   cubestate.IsSolved(t.Next),
	}
	if !t.Reset {
		msg.Move = describe(t.Move)
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for out := range s.clients {
		select {
		case out <- b:
		default:
			// Slow client; drop it rather than block the session.
			delete(s.clients, out)
			close(out)
		}
	}
}

func (s *Server) register() chan []byte {
	out := make(chan []byte, outQueue)
	s.mu.Lock()
	s.clients[out] = struct{}{}
	s.mu.Unlock()
	return out
}

func (s *Server) unregister(out chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[out]; ok {
		delete(s.clients, out)
		close(out)
	}
}

// Handler upgrades the connection and serves one client.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Register before the snapshot so no transition falls in between.
		out := s.register()
		defer s.unregister(out)

		hello, err := s.snapshot()
		if err != nil {
			_ = writeJSON(conn, ErrorMsg{Type: TypeError, Error: err.Error()})
			return
		}
		if err := writeJSON(conn, hello); err != nil {
			return
		}
		s.log.Debug("client connected", "remote", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Observers may never send; pongs keep their read deadline moving.
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		})

		// Writer goroutine.
		replies := make(chan []byte, 8)
		go func() {
			defer conn.Close()
			defer cancel()
			ping := time.NewTicker(s.readTimeout * 9 / 10)
			defer ping.Stop()
			for {
				var b []byte
				var ok bool
				select {
				case <-ctx.Done():
					return
				case <-ping.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
						return
					}
					continue
				case b, ok = <-out:
				case b, ok = <-replies:
				}
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}()

		// Reader loop.
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
			if err := s.handle(msg); err != nil {
				b, _ := json.Marshal(ErrorMsg{Type: TypeError, Error: err.Error()})
				select {
				case replies <- b:
				case <-ctx.Done():
				}
			}
		}
		s.log.Debug("client disconnected", "remote", r.RemoteAddr)
	}
}

var errUnknownType = errors.New("ws: unknown message type")

func (s *Server) handle(msg []byte) error {
	base, err := DecodeBase(msg)
	if err != nil {
		return err
	}
	switch base.Type {
	case TypeMove:
		var mm MoveMsg
		if err := json.Unmarshal(msg, &mm); err != nil {
			return err
		}
		moves, err := mm.Moves()
		if err != nil {
			return err
		}
		for _, m := range moves {
			if _, err := s.cube.Apply(m); err != nil {
				return err
			}
		}
		return nil
	case TypeUndo:
		_, err := s.cube.Undo()
		return err
	case TypeReset:
		s.cube.Reset()
		return nil
	default:
		return errUnknownType
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
