package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"

	"lfg-site/internal/models"
)

func TestSplitForGemini(t *testing.T) {
	system, history, last, err := splitForGemini([]models.CompletionMessage{
		{Role: models.RoleSystem, Content: "be brief"},
		{Role: models.RoleAssistant, Content: "hi, how can I help?"},
		{Role: models.RoleUser, Content: "pricing?"},
		{Role: models.RoleAssistant, Content: "$299/month"},
		{Role: models.RoleUser, Content: "thanks"},
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if system != "be brief\n\nYou already greeted the customer with: hi, how can I help?" {
		t.Errorf("Expected the greeting folded into the system instruction, got %q", system)
	}
	if last != "thanks" {
		t.Errorf("Expected last 'thanks', got %q", last)
	}

	roles := []string{"user", "model"}
	if len(history) != len(roles) {
		t.Fatalf("Expected %d history entries, got %d", len(roles), len(history))
	}
	for i, role := range roles {
		if history[i].Role != role {
			t.Errorf("history %d: expected role %q, got %q", i, role, history[i].Role)
		}
	}
	if text, ok := history[0].Parts[0].(genai.Text); !ok || string(text) != "pricing?" {
		t.Errorf("unexpected history part %v", history[0].Parts[0])
	}
}

// The first turn of every widget: system prompt, seeded greeting, user text.
func TestSplitForGemini_FirstWidgetTurn(t *testing.T) {
	system, history, last, err := splitForGemini([]models.CompletionMessage{
		{Role: models.RoleSystem, Content: "be brief"},
		{Role: models.RoleAssistant, Content: "greeting"},
		{Role: models.RoleUser, Content: "What's your pricing?"},
	})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history, got %d entries starting with role %q", len(history), history[0].Role)
	}
	if last != "What's your pricing?" {
		t.Errorf("Expected last 'What's your pricing?', got %q", last)
	}
	if !strings.Contains(system, "greeting") {
		t.Errorf("Expected the greeting in the system instruction, got %q", system)
	}
}

func TestSplitForGemini_HistoryStartsWithUser(t *testing.T) {
	tests := []struct {
		name     string
		messages []models.CompletionMessage
	}{
		{"greeting then two turns", []models.CompletionMessage{
			{Role: models.RoleAssistant, Content: "hello"},
			{Role: models.RoleUser, Content: "a"},
			{Role: models.RoleAssistant, Content: "b"},
			{Role: models.RoleUser, Content: "c"},
		}},
		{"two leading assistant turns", []models.CompletionMessage{
			{Role: models.RoleSystem, Content: "s"},
			{Role: models.RoleAssistant, Content: "one"},
			{Role: models.RoleAssistant, Content: "two"},
			{Role: models.RoleUser, Content: "a"},
			{Role: models.RoleAssistant, Content: "b"},
			{Role: models.RoleUser, Content: "c"},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, history, _, err := splitForGemini(tc.messages)
			if err != nil {
				t.Fatalf("split: %v", err)
			}
			if len(history) == 0 || history[0].Role != "user" {
				t.Fatalf("Expected history to start with a user turn, got %+v", history)
			}
		})
	}
}

func TestSplitForGemini_RequiresTrailingUserTurn(t *testing.T) {
	_, _, _, err := splitForGemini([]models.CompletionMessage{{Role: models.RoleSystem, Content: "x"}})
	if err == nil {
		t.Error("Expected an error without a user turn")
	}
}

func TestGeminiCompleter_Unconfigured(t *testing.T) {
	g, err := NewGeminiCompleter(context.Background(), "", "", 2)
	if err != nil {
		t.Fatalf("NewGeminiCompleter: %v", err)
	}
	defer g.Close()

	if g.IsConfigured() {
		t.Error("Expected unconfigured completer")
	}
	_, err = g.Complete(context.Background(), []models.CompletionMessage{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}
