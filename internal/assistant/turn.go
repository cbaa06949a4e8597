package assistant

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"studyhub-backend/internal/models"
)

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = models.RoleUser
	RoleAssistant Role = models.RoleAssistant
)

// Turn is one immutable entry of the session transcript.
type Turn struct {
	ID        uuid.UUID
	Role      Role
	Content   string
	CreatedAt time.Time
}

// IsUser reports whether the turn was written by the user.
func (t Turn) IsUser() bool { return t.Role == RoleUser }

// ToWire converts a turn into the proxy's message format.
func ToWire(t Turn) models.ChatMessage {
	return models.ChatMessage{Role: string(t.Role), Content: t.Content}
}

// FromWire is the inverse of ToWire; it rejects roles a session cannot hold.
func FromWire(msg models.ChatMessage) (Turn, error) {
	switch Role(msg.Role) {
	case RoleUser, RoleAssistant:
		return Turn{Role: Role(msg.Role), Content: msg.Content}, nil
	default:
		return Turn{}, errors.Errorf("unsupported role %q", msg.Role)
	}
}

// lastN returns a copy of the newest n turns in wire form, oldest first.
func lastN(turns []Turn, n int) []models.ChatMessage {
	start := 0
	if len(turns) > n {
		start = len(turns) - n
	}
	out := make([]models.ChatMessage, 0, len(turns)-start)
	for _, t := range turns[start:] {
		out = append(out, ToWire(t))
	}
	return out
}
