package models

import "time"

// Sender identifies who authored a chat turn.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Role maps a sender onto the chat-completion role vocabulary.
func (s Sender) Role() string {
	if s == SenderUser {
		return RoleUser
	}
	return RoleAssistant
}

// ChatMessage is one turn of a widget transcript.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionMessage is a single entry of an outbound chat-completion payload.
type CompletionMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// CompletionRequest is the body posted to the chat-completion endpoint.
type CompletionRequest struct {
	Model    string              `json:"model"`
	Messages []CompletionMessage `json:"messages"`
}

// CompletionResponse is the subset of the chat-completion reply we read.
type CompletionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      CompletionMessage `json:"message"`
		FinishReason string            `json:"finish_reason"`
	} `json:"choices"`
}

// FirstContent returns the text of the first choice, or "" if there is none.
func (r *CompletionResponse) FirstContent() string {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

// StartChatRequest is the payload for mounting a widget.
type StartChatRequest struct {
	Profile string `json:"profile"`
}

// ChatSession is returned when a widget is mounted or inspected.
type ChatSession struct {
	SessionID string        `json:"session_id"`
	Profile   string        `json:"profile"`
	Token     string        `json:"token,omitempty"`
	State     string        `json:"state"`
	Messages  []ChatMessage `json:"messages"`
}

// SendMessageRequest carries a new user turn.
type SendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessageResponse carries the assistant turn produced for a submission
// and a refreshed session token.
type SendMessageResponse struct {
	Reply    ChatMessage   `json:"reply"`
	State    string        `json:"state"`
	Messages []ChatMessage `json:"messages"`
	Token    string        `json:"token,omitempty"`
}

// WebSocket event types
const (
	EventMessage = "message"
	EventState   = "state"
)

// ChatEvent is pushed to websocket subscribers of a widget.
type ChatEvent struct {
	Type      string       `json:"type"`
	SessionID string       `json:"session_id"`
	Message   *ChatMessage `json:"message,omitempty"`
	State     string       `json:"state,omitempty"`
}
