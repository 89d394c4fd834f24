package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"bankextract/pkg/config"

	"go.uber.org/zap"
)

// CompletionClient is the narrow surface the orchestrator needs: a prompt
// payload in, generated text out. It exists so the flow can be exercised with
// a substitutable fake.
type CompletionClient interface {
	Extract(ctx context.Context, messages []ChatMessage) (string, error)
}

// OpenRouterClient sends prompt payloads to the OpenRouter chat-completions
// endpoint. Exactly one outbound request per call; no retries, no caching.
type OpenRouterClient struct {
	cfg        *config.OpenRouterConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOpenRouterClient(cfg *config.OpenRouterConfig, logger *zap.Logger) *OpenRouterClient {
	return &OpenRouterClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	// OpenRouter-specific flag enabling base64 multimodal file input.
	FileInputMode string `json:"file_input_mode"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract performs the completion call and returns the generated text
// verbatim. The text receives no cleanup or validation here; interpreting it
// is the caller's concern.
//
// Failure taxonomy:
//   - missing API key  -> *ConfigError, no request is sent
//   - wire error or non-2xx status -> *TransportError
//   - 2xx body without choices[0].message.content -> *ResponseShapeError
func (c *OpenRouterClient) Extract(ctx context.Context, messages []ChatMessage) (string, error) {
	if c.cfg.APIKey == "" {
		return "", &ConfigError{Reason: "OPENROUTER_API_KEY is not set"}
	}

	body, err := json.Marshal(chatRequest{
		Model:         c.cfg.Model,
		Messages:      messages,
		Temperature:   0.0,
		MaxTokens:     4096,
		FileInputMode: "base64",
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Sending completion request",
		zap.String("model", c.cfg.Model),
		zap.String("endpoint", c.cfg.BaseURL+"/chat/completions"),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Completion request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(raw)),
		)
		return "", &TransportError{Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &ResponseShapeError{Body: string(raw)}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return "", &ResponseShapeError{Body: string(raw)}
	}

	content := *parsed.Choices[0].Message.Content
	c.logger.Info("Completion received",
		zap.String("model", c.cfg.Model),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}
