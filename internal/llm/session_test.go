package llm

import (
	"context"
	"errors"
	"testing"

	"mealplan-assistant/internal/config"
)

func TestNewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("NoCredentials", func(t *testing.T) {
		cfg := &config.Config{}

		session, err := NewSession(ctx, cfg)
		if !errors.Is(err, ErrNoProvider) {
			t.Fatalf("Expected ErrNoProvider, got %v", err)
		}
		if session != nil {
			t.Errorf("Expected nil session, got %+v", session)
		}
	})

	t.Run("AnthropicOnly", func(t *testing.T) {
		cfg := &config.Config{AnthropicAPIKey: "sk-ant-test"}

		session, err := NewSession(ctx, cfg)
		if err != nil {
			t.Fatalf("NewSession failed: %v", err)
		}
		defer session.Close()

		if session.Provider != "Anthropic" {
			t.Errorf("Expected Anthropic session, got '%s'", session.Provider)
		}
		if session.Model != anthropicModel {
			t.Errorf("Expected model '%s', got '%s'", anthropicModel, session.Model)
		}
		if !session.Ready() {
			t.Error("Expected session to be ready")
		}
	})

	t.Run("OpenAITakesPriority", func(t *testing.T) {
		cfg := &config.Config{
			OpenAIAPIKey:    "sk-test",
			AnthropicAPIKey: "sk-ant-test",
			GeminiAPIKey:    "gm-test",
		}

		session, err := NewSession(ctx, cfg)
		if err != nil {
			t.Fatalf("NewSession failed: %v", err)
		}
		defer session.Close()

		if session.Provider != "OpenAI" {
			t.Errorf("Expected OpenAI session, got '%s'", session.Provider)
		}
		if session.Model != openAIModel {
			t.Errorf("Expected model '%s', got '%s'", openAIModel, session.Model)
		}
	})
}

func TestSessionNilSafety(t *testing.T) {
	var session *Session

	if session.Ready() {
		t.Error("Expected nil session not to be ready")
	}
	if err := session.Close(); err != nil {
		t.Errorf("Expected nil session Close to be a no-op, got %v", err)
	}
}

func TestProviderOrder(t *testing.T) {
	// The selection order is part of the contract: OpenAI, then Anthropic,
	// then Gemini.
	want := []string{"OpenAI", "Anthropic", "Gemini"}
	if len(providers) != len(want) {
		t.Fatalf("Expected %d providers, got %d", len(want), len(providers))
	}
	for i, p := range providers {
		if p.Name() != want[i] {
			t.Errorf("Expected provider %d to be '%s', got '%s'", i, want[i], p.Name())
		}
	}
}
