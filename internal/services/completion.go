package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"studyhub-backend/internal/models"
)

const (
	DefaultBaseURL     = "https://api.deepseek.com/v1"
	DefaultModel       = "deepseek-chat"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second

	SystemPrompt = "You are a helpful AI study assistant for students. Provide clear, educational responses that help with learning and academic questions. Keep responses concise but informative."

	// EmptyReplyFallback is returned as a successful reply when the upstream
	// answers without any completion text.
	EmptyReplyFallback = "Sorry, I could not process your request."
)

// ErrUpstream marks every failure of the upstream round trip: transport,
// timeout, non-2xx status or an unparseable body.
var ErrUpstream = errors.New("upstream completion failed")

// CompletionConfig configures the upstream chat-completion call. Zero values
// fall back to the package defaults; Temperature only does so when negative.
type CompletionConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// CompletionService is the only component that holds the upstream secret.
// It is stateless: every Complete call is one request/response round trip.
type CompletionService struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
	timeout     time.Duration
}

func NewCompletionService(cfg CompletionConfig) *CompletionService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	// No retries: a failed call goes straight back to the caller.
	client := openai.NewClient(
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/"),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	return &CompletionService{
		client:      client,
		model:       cfg.Model,
		maxTokens:   int64(cfg.MaxTokens),
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

// Complete prepends the system prompt to messages, forwards them upstream and
// returns the first completion's text. An empty list is forwarded as-is.
func (s *CompletionService) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(s.model),
		Messages:    buildUpstreamMessages(messages),
		MaxTokens:   openai.Int(s.maxTokens),
		Temperature: openai.Float(s.temperature),
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	reply := extractReply(resp)
	if reply == "" {
		log.Warn().Str("model", s.model).Msg("upstream returned empty completion, using fallback")
		return EmptyReplyFallback, nil
	}
	return reply, nil
}

func buildUpstreamMessages(messages []models.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	result = append(result, openai.SystemMessage(SystemPrompt))
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}

func extractReply(resp *openai.ChatCompletion) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return ""
	}
	return content
}
