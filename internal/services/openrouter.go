package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lfg-site/internal/models"
)

const (
	DefaultOpenRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	DefaultOpenRouterModel = "x-ai/grok-3-mini-beta"
	DefaultChatTimeout     = 60 * time.Second

	openRouterTitle = "WhatsApp Customer Service AI"

	// maxResponseSize caps how much of an upstream body is read.
	maxResponseSize = 10 * 1024 * 1024
)

type OpenRouterConfig struct {
	APIKey  string
	URL     string
	Model   string
	Referer string // public origin of the site, sent as HTTP-Referer
	Timeout time.Duration
}

// OpenRouterClient issues one chat-completion call per Complete. It never
// retries; a failed attempt is reported to the caller as is.
type OpenRouterClient struct {
	apiKey     string
	url        string
	model      string
	referer    string
	httpClient *http.Client
}

func NewOpenRouterClient(cfg OpenRouterConfig) *OpenRouterClient {
	if cfg.URL == "" {
		cfg.URL = DefaultOpenRouterURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenRouterModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultChatTimeout
	}
	if cfg.Referer == "" {
		cfg.Referer = "http://localhost:3000"
	}
	return &OpenRouterClient{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		url:        cfg.URL,
		model:      cfg.Model,
		referer:    cfg.Referer,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *OpenRouterClient) IsConfigured() bool { return c.apiKey != "" }

func (c *OpenRouterClient) Model() string { return c.model }

// Complete posts messages in order and returns the first choice's text.
func (c *OpenRouterClient) Complete(ctx context.Context, messages []models.CompletionMessage) (string, error) {
	if !c.IsConfigured() {
		slog.Error("OpenRouter API key is not set; add OPENROUTER_API_KEY to the environment")
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(models.CompletionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", openRouterTitle)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	// Headers and bodies are never logged; they carry the credential and user text.
	slog.Debug("completion response", "status", resp.StatusCode, "duration", time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{Service: "OpenRouter", Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed models.CompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	content := parsed.FirstContent()
	if strings.TrimSpace(content) == "" {
		return "", ErrNoChoices
	}
	return content, nil
}
