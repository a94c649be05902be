package ws

import (
	"encoding/json"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Client message types
const (
	MsgRun     MessageType = "run"
	MsgPreview MessageType = "preview"
)

// Server message types
const (
	MsgTraceLine MessageType = "trace_line"
	MsgDecision  MessageType = "decision"
	MsgPreviewed MessageType = "preview"
	MsgError     MessageType = "error"
)

// Message is the server-to-client envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ClientMessage is what the demo page sends
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Company string      `json:"company,omitempty"`
	Text    string      `json:"text,omitempty"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func newMessage(msgType MessageType, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Payload: data}, nil
}
