package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"studyhub-backend/internal/models"
)

// MaxContextMessages is the number of most recent turns sent as context.
const MaxContextMessages = 10

const (
	Greeting     = "Hello! I'm your AI study assistant. How can I help you today?"
	FallbackText = "I'm sorry, I'm having trouble connecting right now. Please try again later."
)

// FailureNotice is the transient notification shown alongside FallbackText.
const FailureNotice = "Failed to get AI response. Please try again."

var (
	ErrEmptyInput    = errors.New("message is empty")
	ErrBusy          = errors.New("a completion request is already in flight")
	ErrAIUnavailable = errors.New("AI assistant unavailable")
)

// Completer is the proxy seen from the session.
type Completer interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// Session holds the transcript of one assistant conversation and allows at
// most one outstanding completion request at a time. Turns are only ever
// appended.
type Session struct {
	id        uuid.UUID
	completer Completer
	window    int
	greeting  string
	now       func() time.Time

	mu    sync.Mutex
	turns []Turn
	busy  bool
}

type Option func(*Session)

// WithGreeting replaces the opening assistant turn; "" starts empty.
func WithGreeting(text string) Option {
	return func(s *Session) { s.greeting = text }
}

// WithWindow overrides MaxContextMessages.
func WithWindow(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.window = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(completer Completer, opts ...Option) *Session {
	s := &Session{
		id:        uuid.New(),
		completer: completer,
		window:    MaxContextMessages,
		greeting:  Greeting,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.greeting != "" {
		s.turns = append(s.turns, s.newTurn(RoleAssistant, s.greeting))
	}
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

// Turns returns a copy of the transcript in insertion order.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Messages returns the full transcript in wire form.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lastN(s.turns, len(s.turns))
}

// Window returns the context that the next request would send.
func (s *Session) Window() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lastN(s.turns, s.window)
}

// Busy reports whether a completion request is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// AppendUserTurn records a user message. Blank text is refused.
func (s *Session) AppendUserTurn(text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyInput
	}
	return s.appendTurn(RoleUser, text), nil
}

// AppendAssistantTurn records a reply returned by RequestCompletion.
func (s *Session) AppendAssistantTurn(text string) Turn {
	return s.appendTurn(RoleAssistant, text)
}

// RequestCompletion sends the current window to the proxy and returns the
// reply text. It fails fast with ErrBusy while another request is in flight;
// every proxy failure is reported as ErrAIUnavailable.
func (s *Session) RequestCompletion(ctx context.Context) (string, error) {
	if !s.acquire() {
		return "", ErrBusy
	}
	defer s.release()

	return s.complete(ctx)
}

// Send runs one full exchange: it appends the user turn, requests a
// completion and appends either the reply or FallbackText. On failure the
// fallback turn is returned together with ErrAIUnavailable; the user turn
// stays in the transcript.
func (s *Session) Send(ctx context.Context, text string) (Turn, error) {
	if strings.TrimSpace(text) == "" {
		return Turn{}, ErrEmptyInput
	}
	if !s.acquire() {
		return Turn{}, ErrBusy
	}
	defer s.release()

	s.appendTurn(RoleUser, text)

	reply, err := s.complete(ctx)
	if err != nil {
		return s.appendTurn(RoleAssistant, FallbackText), err
	}
	return s.appendTurn(RoleAssistant, reply), nil
}

func (s *Session) complete(ctx context.Context) (string, error) {
	reply, err := s.completer.Complete(ctx, s.Window())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAIUnavailable, err)
	}
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", ErrAIUnavailable)
	}
	return reply, nil
}

func (s *Session) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Session) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Session) appendTurn(role Role, content string) Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.newTurn(role, content)
	s.turns = append(s.turns, t)
	return t
}

func (s *Session) newTurn(role Role, content string) Turn {
	return Turn{ID: uuid.New(), Role: role, Content: content, CreatedAt: s.now()}
}
