package net

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types for the JSON protocol over the relay websocket.

type MessageType string

const (
	// Relay → client
	TypeHello        MessageType = "hello"         // connection_id
	TypeQueued       MessageType = "queued"        // waiting for an opponent
	TypeMatchFound   MessageType = "match_found"   // session_id, player_1/2_connection_id
	TypeOpponentLeft MessageType = "opponent_left" // session_id
	TypeError        MessageType = "error"         // error

	// Client → relay
	TypeFindMatch MessageType = "find_match"

	// Both directions: relayed verbatim to the other peer.
	TypeStateUpdate MessageType = "game_state" // session_id, game_state
)

var ErrBadMessage = errors.New("bad message")

// Message is the envelope for everything sent over the relay.
type Message struct {
	Type MessageType `json:"type"`

	// For "hello"
	ConnectionID string `json:"connection_id,omitempty"`

	// For "match_found", "game_state" and "opponent_left"
	SessionID string `json:"session_id,omitempty"`

	// For "match_found"
	Player1ConnectionID string `json:"player_1_connection_id,omitempty"`
	Player2ConnectionID string `json:"player_2_connection_id,omitempty"`

	// For "game_state"
	State *WireState `json:"game_state,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`
}

// Validate checks that m carries the fields its type requires.
func (m Message) Validate() error {
	switch m.Type {
	case TypeHello:
		if m.ConnectionID == "" {
			return fmt.Errorf("%w: hello without connection_id", ErrBadMessage)
		}
	case TypeMatchFound:
		if m.SessionID == "" || m.Player1ConnectionID == "" || m.Player2ConnectionID == "" {
			return fmt.Errorf("%w: match_found needs session and both connection ids", ErrBadMessage)
		}
	case TypeStateUpdate:
		if m.SessionID == "" || m.State == nil {
			return fmt.Errorf("%w: game_state needs session_id and game_state", ErrBadMessage)
		}
	case TypeOpponentLeft, TypeQueued, TypeFindMatch:
	case TypeError:
		if m.Error == "" {
			return fmt.Errorf("%w: error without text", ErrBadMessage)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrBadMessage, m.Type)
	}
	return nil
}

// Encode validates and marshals m.
func Encode(m Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Decode unmarshals and validates a message.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}
