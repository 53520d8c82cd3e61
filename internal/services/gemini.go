package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"lfg-site/internal/models"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiCompleter answers chat turns through the Gemini API. The system
// instruction is carried as SystemInstruction and the prior transcript as
// chat history; the last message is sent as the new turn.
type GeminiCompleter struct {
	client    *genai.Client
	modelName string
	rateChan  chan struct{} // Token bucket
}

// NewGeminiCompleter returns an unconfigured completer when apiKey is empty,
// so a missing credential surfaces per turn instead of at startup.
func NewGeminiCompleter(ctx context.Context, apiKey, modelName string, concurrentReqs int) (*GeminiCompleter, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if concurrentReqs <= 0 {
		concurrentReqs = 1
	}

	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	g := &GeminiCompleter{modelName: modelName, rateChan: rateChan}
	if strings.TrimSpace(apiKey) == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiCompleter) IsConfigured() bool { return g.client != nil }

func (g *GeminiCompleter) Model() string { return g.modelName }

func (g *GeminiCompleter) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

// acquireRate blocks until a rate slot is available
func (g *GeminiCompleter) acquireRate(ctx context.Context) error {
	select {
	case <-g.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (g *GeminiCompleter) releaseRate() {
	g.rateChan <- struct{}{}
}

func (g *GeminiCompleter) Complete(ctx context.Context, messages []models.CompletionMessage) (string, error) {
	if g.client == nil {
		return "", ErrNotConfigured
	}

	system, history, last, err := splitForGemini(messages)
	if err != nil {
		return "", err
	}

	if err := g.acquireRate(ctx); err != nil {
		return "", err
	}
	defer g.releaseRate()

	model := g.client.GenerativeModel(g.modelName)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrNoChoices
	}
	return text, nil
}

// splitForGemini separates the system instruction, the history and the final
// user turn. Gemini names the assistant role "model", and the returned
// history always starts with a user turn.
func splitForGemini(messages []models.CompletionMessage) (string, []*genai.Content, string, error) {
	var system []string
	var turns []models.CompletionMessage
	for _, m := range messages {
		if m.Role == models.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}

	if len(turns) == 0 || turns[len(turns)-1].Role != models.RoleUser {
		return "", nil, "", fmt.Errorf("gemini: conversation must end with a user turn")
	}

	// Gemini history must open with a user turn. Assistant turns before the
	// first user message (the widget greeting) move into the instruction.
	for len(turns) > 0 && turns[0].Role == models.RoleAssistant {
		system = append(system, "You already greeted the customer with: "+turns[0].Content)
		turns = turns[1:]
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == models.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	return strings.Join(system, "\n\n"), history, turns[len(turns)-1].Content, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
