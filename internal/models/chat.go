package models

// Wire role names. System turns are only ever created by the proxy.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// IsConversational reports whether the message carries a role a client may send.
func (m ChatMessage) IsConversational() bool {
	return m.Role == RoleUser || m.Role == RoleAssistant
}

// CompletionRequest is the payload sent to the assistant chat endpoint.
type CompletionRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// CompletionResponse is the reply from the assistant chat endpoint.
// Exactly one of Message or Error is set.
type CompletionResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
