package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// ClaudeService provides chat completions through the Anthropic API. It does
// not implement embeddings; embeddings always come from the Gemini service
// regardless of the configured completion provider.
type ClaudeService struct {
	config  *common.ClaudeConfig
	logger  arbor.ILogger
	client  anthropic.Client
	timeout time.Duration
}

// convertMessagesToClaude converts []interfaces.Message to Anthropic message
// params. System messages are returned separately since the Anthropic API
// takes them as a top-level parameter.
func convertMessagesToClaude(messages []interfaces.Message) ([]anthropic.MessageParam, string, error) {
	if len(messages) == 0 {
		return nil, "", fmt.Errorf("messages cannot be empty")
	}

	claudeMessages := make([]anthropic.MessageParam, 0, len(messages))
	var systemText string
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			if systemText == "" {
				systemText = msg.Content
			}
		case "assistant":
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			claudeMessages = append(claudeMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	if len(claudeMessages) == 0 {
		return nil, "", fmt.Errorf("at least one message must have role 'user' or 'assistant'")
	}

	return claudeMessages, systemText, nil
}

// NewClaudeService creates a new Claude completion service instance.
func NewClaudeService(claudeConfig *common.ClaudeConfig, timeout time.Duration, logger arbor.ILogger) (*ClaudeService, error) {
	if claudeConfig.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set ANTHROPIC_API_KEY or claude.api_key in config)")
	}

	if claudeConfig.Model == "" {
		claudeConfig.Model = "claude-haiku-3-5-20241022"
	}
	if claudeConfig.MaxTokens <= 0 {
		claudeConfig.MaxTokens = 8192
	}

	client := anthropic.NewClient(option.WithAPIKey(claudeConfig.APIKey))

	service := &ClaudeService{
		config:  claudeConfig,
		logger:  logger,
		client:  client,
		timeout: timeout,
	}

	logger.Info().
		Str("model", claudeConfig.Model).
		Int("max_tokens", claudeConfig.MaxTokens).
		Dur("timeout", timeout).
		Msg("Claude completion service initialized")

	return service, nil
}

// Chat generates a completion response for the conversation history.
func (s *ClaudeService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages cannot be empty for chat completion")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()

	claudeMessages, systemText, err := convertMessagesToClaude(messages)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages to Claude format: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(s.config.MaxTokens),
		Messages:  claudeMessages,
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemText}}
	}

	resp, err := s.client.Messages.New(timeoutCtx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp == nil || len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic API")
	}

	var responseText string
	for _, block := range resp.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}
	if responseText == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	s.logger.Debug().
		Int("message_count", len(messages)).
		Int("response_length", len(responseText)).
		Dur("duration", time.Since(startTime)).
		Msg("Chat completion generated")

	return responseText, nil
}

// HealthCheck verifies the service is configured.
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("Anthropic API key is not configured")
	}
	return nil
}

// Close is a no-op; the Anthropic client holds no persistent connections.
func (s *ClaudeService) Close() error {
	return nil
}
