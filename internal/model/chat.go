package model

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of the widget's conversation log
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Turn is a completed (user, assistant) exchange as sent upstream
type Turn [2]string

// ChatRequest is the body accepted by POST /v1/chat
type ChatRequest struct {
	Message  string        `json:"message"`
	History  []Turn        `json:"history,omitempty"`
	Messages []ChatMessage `json:"messages,omitempty"` // raw log; converted to History when History is empty
}

// ChatUpstreamRequest is the body forwarded to the chatbot endpoint
type ChatUpstreamRequest struct {
	Message string `json:"message"`
	History []Turn `json:"history"`
}

// ChatReply is the normalized answer returned to the widget
type ChatReply struct {
	Reply    string `json:"reply"`
	Degraded bool   `json:"-"` // upstream failed; reply is the fallback
}
