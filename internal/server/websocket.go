// Package server exposes the Monte Carlo driver over a WebSocket
// boundary. Each connection may issue multiple runs; progress and
// results stream back as JSON envelopes.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/manacurve/manasim/internal/config"
	"github.com/manacurve/manasim/internal/montecarlo"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Recorder persists finished runs. A nil Recorder disables persistence.
type Recorder interface {
	SaveRun(ctx context.Context, runID string, deckName string, results *montecarlo.SimulationResults) error
}

// Server handles WebSocket simulation sessions. Fields a run request
// omits fall back to the configured simulation defaults.
type Server struct {
	defaults config.SimulationConfig
	driver   *montecarlo.Driver
	recorder Recorder
	logger   *zap.Logger
}

// New builds a Server. recorder may be nil.
func New(defaults config.SimulationConfig, driver *montecarlo.Driver, recorder Recorder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{defaults: defaults, driver: driver, recorder: recorder, logger: logger}
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// client wraps one WebSocket connection. All writes go through the send
// channel so a single goroutine owns the connection for writing.
type client struct {
	conn   *websocket.Conn
	send   chan []byte
	logger *zap.Logger
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, 256),
		logger: s.logger.With(zap.String("remote", conn.RemoteAddr().String())),
	}
	c.logger.Info("client connected")

	go c.writePump()
	s.readPump(c)
}

func (s *Server) readPump(c *client) {
	defer func() {
		close(c.send)
		c.logger.Info("client disconnected")
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.sendError("", "malformed envelope: "+err.Error())
			continue
		}

		switch env.Type {
		case MessageRun:
			var req RunRequest
			if err := json.Unmarshal(env.Payload, &req); err != nil {
				c.sendError("", "malformed run request: "+err.Error())
				continue
			}
			runID := uuid.New().String()
			go s.executeRun(c, runID, req)

		default:
			c.sendError("", "unknown message type "+env.Type)
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// executeRun runs one simulation (or comparison) and streams progress
// back. It runs in its own goroutine; the client may disconnect before
// it finishes, in which case sends are dropped.
func (s *Server) executeRun(c *client, runID string, req RunRequest) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("run panicked", zap.String("run_id", runID), zap.Any("panic", r))
			c.sendError(runID, "internal error")
		}
	}()

	cfg, err := req.Config.applyDefaults(s.defaults).ToConfig()
	if err != nil {
		c.sendError(runID, err.Error())
		return
	}
	if cfg.ProgressInterval == 0 && s.defaults.ProgressInterval > 0 {
		cfg.ProgressInterval = s.defaults.ProgressInterval
	}
	dk, err := req.Deck.ToDeck()
	if err != nil {
		c.sendError(runID, err.Error())
		return
	}

	progress := func(completed, total int) {
		c.trySend(MessageProgress, runID, ProgressPayload{Completed: completed, Total: total})
	}

	s.logger.Info("run started",
		zap.String("run_id", runID),
		zap.String("deck", dk.Name),
		zap.Int("iterations", cfg.Iterations),
	)

	if req.DeckB != nil {
		dkB, err := req.DeckB.ToDeck()
		if err != nil {
			c.sendError(runID, err.Error())
			return
		}
		results, err := s.driver.RunComparison(cfg, dk, dkB, progress)
		if err != nil {
			c.sendError(runID, err.Error())
			return
		}
		c.sendJSON(MessageResult, runID, results)
		s.record(runID, dk.Name, results.A)
		s.record(uuid.New().String(), dkB.Name, results.B)
		return
	}

	results, err := s.driver.Run(cfg, dk, progress)
	if err != nil {
		c.sendError(runID, err.Error())
		return
	}
	c.sendJSON(MessageResult, runID, results)
	s.record(runID, dk.Name, results)
}

func (s *Server) record(runID, deckName string, results *montecarlo.SimulationResults) {
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.recorder.SaveRun(ctx, runID, deckName, results); err != nil {
		s.logger.Warn("failed to persist run", zap.String("run_id", runID), zap.Error(err))
	}
}

// sendJSON queues an envelope, blocking until the writer drains it. Used
// for results and errors, which must not be dropped.
func (c *client) sendJSON(typ, runID string, payload any) {
	data, err := marshalEnvelope(typ, runID, payload)
	if err != nil {
		c.logger.Error("failed to marshal message", zap.String("type", typ), zap.Error(err))
		if typ != MessageError {
			c.sendError(runID, "failed to encode "+typ+" message: "+err.Error())
		}
		return
	}
	defer func() {
		// send may be closed if the client disconnected mid-run.
		recover()
	}()
	c.send <- data
}

// trySend queues an envelope without blocking. Progress frames are
// droppable; a slow client just sees fewer of them.
func (c *client) trySend(typ, runID string, payload any) {
	data, err := marshalEnvelope(typ, runID, payload)
	if err != nil {
		return
	}
	defer func() {
		recover()
	}()
	select {
	case c.send <- data:
	default:
	}
}

func (c *client) sendError(runID, message string) {
	c.sendJSON(MessageError, runID, ErrorPayload{Message: message})
}
