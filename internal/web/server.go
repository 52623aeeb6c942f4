package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	bladenet "github.com/faridridwanto/blade-clone/internal/net"
)

// Server is the matchmaking relay. It pairs connections into sessions and
// forwards game states between the two peers of a session; it never runs
// game rules itself.
type Server struct {
	logger *zap.Logger
	mux    *http.ServeMux

	mu       sync.Mutex
	conns    map[string]*client
	queue    []*client
	sessions map[string]*session
}

type client struct {
	id        string
	ws        *websocket.Conn
	sessionID string
	queued    bool
}

type session struct {
	id      string
	players [2]*client
}

// peer returns the other side of the session, or nil.
func (s *session) peer(c *client) *client {
	switch c {
	case s.players[0]:
		return s.players[1]
	case s.players[1]:
		return s.players[0]
	}
	return nil
}

// NewServer creates a relay server. A nil logger discards output.
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger:   logger,
		mux:      http.NewServeMux(),
		conns:    make(map[string]*client),
		sessions: make(map[string]*session),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("relay listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

// Stats is the /healthz payload.
type Stats struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
	Queued      int    `json:"queued"`
	Sessions    int    `json:"sessions"`
}

func (s *Server) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Status: "ok", Connections: len(s.conns), Queued: len(s.queue), Sessions: len(s.sessions)}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Stats())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	c := &client{id: uuid.NewString(), ws: wsConn}
	log := s.logger.With(zap.String("conn_id", c.id))

	s.mu.Lock()
	s.conns[c.id] = c
	s.mu.Unlock()
	log.Info("connected")
	defer s.drop(ctx, c)

	if err := s.send(ctx, c, bladenet.Message{Type: bladenet.TypeHello, ConnectionID: c.id}); err != nil {
		log.Warn("send hello", zap.Error(err))
		return
	}

	for {
		_, data, err := wsConn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				log.Debug("read ended", zap.Error(err))
			}
			return
		}
		msg, err := bladenet.Decode(data)
		if err != nil {
			log.Warn("bad message", zap.Error(err))
			s.sendError(ctx, c, err.Error())
			continue
		}
		log.Debug("message", zap.String("type", string(msg.Type)), zap.String("session_id", msg.SessionID))

		switch msg.Type {
		case bladenet.TypeFindMatch:
			s.findMatch(ctx, c)
		case bladenet.TypeStateUpdate:
			s.relay(ctx, c, msg)
		default:
			s.sendError(ctx, c, "unexpected message type "+string(msg.Type))
		}
	}
}

// findMatch queues c, or pairs it with the longest-waiting connection. The
// first queued connection becomes player 1.
func (s *Server) findMatch(ctx context.Context, c *client) {
	s.mu.Lock()
	if c.sessionID != "" || c.queued {
		s.mu.Unlock()
		s.sendError(ctx, c, "already matched or queued")
		return
	}
	if len(s.queue) == 0 {
		c.queued = true
		s.queue = append(s.queue, c)
		s.mu.Unlock()
		s.logger.Info("queued", zap.String("conn_id", c.id))
		s.sendOrLog(ctx, c, bladenet.Message{Type: bladenet.TypeQueued})
		return
	}

	first := s.queue[0]
	s.queue = s.queue[1:]
	first.queued = false
	sess := &session{id: uuid.NewString(), players: [2]*client{first, c}}
	first.sessionID = sess.id
	c.sessionID = sess.id
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("match found",
		zap.String("session_id", sess.id),
		zap.String("player_1", first.id),
		zap.String("player_2", c.id))
	found := bladenet.Message{
		Type:                bladenet.TypeMatchFound,
		SessionID:           sess.id,
		Player1ConnectionID: first.id,
		Player2ConnectionID: c.id,
	}
	s.sendOrLog(ctx, first, found)
	s.sendOrLog(ctx, c, found)
}

// relay forwards a state update to the sender's peer.
func (s *Server) relay(ctx context.Context, from *client, msg bladenet.Message) {
	s.mu.Lock()
	sess, ok := s.sessions[msg.SessionID]
	var to *client
	if ok && from.sessionID == msg.SessionID {
		to = sess.peer(from)
	}
	s.mu.Unlock()

	if to == nil {
		s.logger.Warn("state for foreign session",
			zap.String("conn_id", from.id), zap.String("session_id", msg.SessionID))
		s.sendError(ctx, from, "not a member of session "+msg.SessionID)
		return
	}
	s.sendOrLog(ctx, to, msg)
}

// drop forgets c and tells its peer, if any, that it left.
func (s *Server) drop(ctx context.Context, c *client) {
	s.mu.Lock()
	delete(s.conns, c.id)
	if c.queued {
		for i, q := range s.queue {
			if q == c {
				s.queue = append(s.queue[:i], s.queue[i+1:]...)
				break
			}
		}
		c.queued = false
	}
	var peer *client
	sessionID := c.sessionID
	if sess, ok := s.sessions[sessionID]; ok {
		peer = sess.peer(c)
		delete(s.sessions, sessionID)
		if peer != nil {
			peer.sessionID = ""
		}
	}
	s.mu.Unlock()

	s.logger.Info("disconnected", zap.String("conn_id", c.id), zap.String("session_id", sessionID))
	if peer != nil {
		// The request context is done by now; the peer's connection is not.
		s.sendOrLog(context.WithoutCancel(ctx), peer, bladenet.Message{Type: bladenet.TypeOpponentLeft, SessionID: sessionID})
	}
}

func (s *Server) send(ctx context.Context, c *client, msg bladenet.Message) error {
	data, err := bladenet.Encode(msg)
	if err != nil {
		return err
	}
	return c.ws.Write(ctx, websocket.MessageText, data)
}

func (s *Server) sendOrLog(ctx context.Context, c *client, msg bladenet.Message) {
	if err := s.send(ctx, c, msg); err != nil {
		s.logger.Warn("send failed",
			zap.String("conn_id", c.id), zap.String("type", string(msg.Type)), zap.Error(err))
	}
}

func (s *Server) sendError(ctx context.Context, c *client, text string) {
	s.sendOrLog(ctx, c, bladenet.Message{Type: bladenet.TypeError, Error: text})
}
