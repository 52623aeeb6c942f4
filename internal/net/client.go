package net

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/websocket"
)

// ErrOpponentLeft is returned when the relay reports the peer disconnected.
var ErrOpponentLeft = errors.New("opponent left")

// Session is one client connection to the relay. It is not safe for
// concurrent reads; writes may happen from any goroutine.
type Session struct {
	conn *websocket.Conn

	ConnectionID string
	SessionID    string
	OpponentID   string
	IsPlayer1    bool
}

// Dial connects to the relay at url and waits for the hello message.
func Dial(ctx context.Context, url string) (*Session, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}
	s := &Session{conn: conn}

	msg, err := s.Next(ctx)
	if err != nil {
		conn.CloseNow()
		return nil, fmt.Errorf("read hello: %w", err)
	}
	if msg.Type != TypeHello {
		conn.CloseNow()
		return nil, fmt.Errorf("%w: expected hello, got %q", ErrBadMessage, msg.Type)
	}
	s.ConnectionID = msg.ConnectionID
	return s, nil
}

// FindMatch asks the relay for an opponent and blocks until one is found.
func (s *Session) FindMatch(ctx context.Context) error {
	if err := s.send(ctx, Message{Type: TypeFindMatch}); err != nil {
		return fmt.Errorf("send find_match: %w", err)
	}
	for {
		msg, err := s.Next(ctx)
		if err != nil {
			return fmt.Errorf("wait for match: %w", err)
		}
		switch msg.Type {
		case TypeQueued:
			continue
		case TypeError:
			return fmt.Errorf("relay: %s", msg.Error)
		case TypeMatchFound:
			s.SessionID = msg.SessionID
			s.IsPlayer1 = msg.Player1ConnectionID == s.ConnectionID
			if s.IsPlayer1 {
				s.OpponentID = msg.Player2ConnectionID
			} else {
				s.OpponentID = msg.Player1ConnectionID
			}
			return nil
		}
	}
}

// SendState relays a state to the opponent.
func (s *Session) SendState(ctx context.Context, ws WireState) error {
	if s.SessionID == "" {
		return errors.New("send state: no match")
	}
	return s.send(ctx, Message{Type: TypeStateUpdate, SessionID: s.SessionID, State: &ws})
}

// NextState blocks until the opponent's next state arrives. Messages for
// other sessions are skipped.
func (s *Session) NextState(ctx context.Context) (WireState, error) {
	for {
		msg, err := s.Next(ctx)
		if err != nil {
			return WireState{}, err
		}
		switch msg.Type {
		case TypeOpponentLeft:
			return WireState{}, ErrOpponentLeft
		case TypeError:
			return WireState{}, fmt.Errorf("relay: %s", msg.Error)
		case TypeStateUpdate:
			if msg.SessionID == s.SessionID {
				return *msg.State, nil
			}
		}
	}
}

// Next reads the next relay message.
func (s *Session) Next(ctx context.Context) (Message, error) {
	_, data, err := s.conn.Read(ctx)
	if err != nil {
		return Message{}, err
	}
	return Decode(data)
}

// Close closes the connection normally.
func (s *Session) Close() error {
	return s.conn.Close(websocket.StatusNormalClosure, "bye")
}

func (s *Session) send(ctx context.Context, m Message) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	return s.conn.Write(ctx, websocket.MessageText, data)
}
