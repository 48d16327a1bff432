// Package ws streams puzzle ticks to websocket clients and accepts moves
// from them.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/SeamusWaldron/cubesim"
)

const (
	defaultTickRate = 60
	defaultMaxQueue = 16
	writeWait       = 5 * time.Second
	readWait        = 60 * time.Second
	pingPeriod      = readWait / 2
)

// Frame is one server to client message.
type Frame struct {
	Type   string              `json:"type"` // tick, ack, error, reset
	Report *cubesim.TickReport `json:"report,omitempty"`
	Moves  []cubesim.SliceMove `json:"moves,omitempty"`
	Error  string              `json:"error,omitempty"`
}

type envelope struct {
	cmd Command
	out chan []byte
}

// Server owns a puzzle and runs its tick loop. Websocket readers hand
// commands to the loop over an inbox channel; only Run touches the puzzle.
type Server struct {
	puzzle   *cubesim.Puzzle
	log      *slog.Logger
	schema   *jsonschema.Schema
	tickRate int
	maxQueue int

	upgrader websocket.Upgrader
	inbox    chan envelope
	join     chan chan []byte
	leave    chan chan []byte
	done     chan struct{}
	clients  map[chan []byte]struct{}
}

// NewServer wraps p. tickRate and maxQueue fall back to 60 Hz and 16 frames
// when not positive.
func NewServer(p *cubesim.Puzzle, tickRate, maxQueue int, logger *slog.Logger) (*Server, error) {
	schema, err := CompileSchema()
	if err != nil {
		return nil, err
	}
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	if maxQueue <= 0 {
		maxQueue = defaultMaxQueue
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		puzzle:   p,
		log:      logger,
		schema:   schema,
		tickRate: tickRate,
		maxQueue: maxQueue,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		inbox:   make(chan envelope, 64),
		join:    make(chan chan []byte),
		leave:   make(chan chan []byte),
		done:    make(chan struct{}),
		clients: make(map[chan []byte]struct{}),
	}
	p.OnReset(func() { s.broadcast(Frame{Type: "reset"}) })
	return s, nil
}

// Run ticks the puzzle until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	dt := float32(1) / float32(s.tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out := <-s.join:
			s.clients[out] = struct{}{}
			s.log.Info("client joined", "clients", len(s.clients))
		case out := <-s.leave:
			delete(s.clients, out)
			s.log.Info("client left", "clients", len(s.clients))
		case env := <-s.inbox:
			s.handle(env)
		case <-ticker.C:
			report, err := s.puzzle.Tick(dt)
			if err != nil {
				return err
			}
			if report.Selected == nil && report.Completed == nil && len(report.Deltas) == 0 {
				continue
			}
			s.broadcast(Frame{Type: "tick", Report: &report})
		}
	}
}

func (s *Server) handle(env envelope) {
	moves, err := env.cmd.Apply(s.puzzle)
	if err != nil {
		s.log.Debug("command rejected", "type", env.cmd.Type, "err", err)
		send(env.out, Frame{Type: "error", Error: err.Error()})
		return
	}
	s.log.Debug("command applied", "type", env.cmd.Type, "moves", len(moves))
	send(env.out, Frame{Type: "ack", Moves: moves})
}

func (s *Server) broadcast(f Frame) {
	for out := range s.clients {
		send(out, f)
	}
}

// send drops the frame when the client is too slow to keep up.
func send(out chan []byte, f Frame) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	select {
	case out <- b:
	default:
	}
}

// Handler upgrades the request and serves one client.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		out := make(chan []byte, s.maxQueue)
		select {
		case s.join <- out:
		case <-s.done:
			return
		case <-r.Context().Done():
			return
		}

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(readWait))
		})

		// Writer goroutine.
		go func() {
			ping := time.NewTicker(pingPeriod)
			defer ping.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ping.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
						cancel()
						_ = conn.Close()
						return
					}
				case <-s.done:
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
						time.Now().Add(time.Second))
					cancel()
					_ = conn.Close()
					return
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						_ = conn.Close()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readWait))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
					!errors.Is(err, context.Canceled) {
					s.log.Debug("read failed", "err", err)
				}
				break
			}
			cmd, err := DecodeCommand(s.schema, msg)
			if err != nil {
				send(out, Frame{Type: "error", Error: err.Error()})
				continue
			}
			select {
			case s.inbox <- envelope{cmd: cmd, out: out}:
			case <-s.done:
				cancel()
			case <-ctx.Done():
			}
			if ctx.Err() != nil {
				break
			}
		}

		select {
		case s.leave <- out:
		case <-s.done:
		}
	}
}
