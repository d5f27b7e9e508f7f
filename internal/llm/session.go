package llm

import (
	"context"
	"errors"
	"log"

	"mealplan-assistant/internal/config"
)

var (
	// ErrNoProvider signals that no LLM credential is configured. It is a
	// normal state, not a crash: callers report it and carry on.
	ErrNoProvider = errors.New("no LLM provider available")

	// ErrUnsupportedProvider signals a session that names a provider the
	// generation path cannot drive.
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
)

// Provider describes one LLM vendor the selector can try.
type Provider interface {
	Name() string
	// Credential returns the provider's API key from the config.
	// Empty means absent, and the selector skips the provider.
	Credential(cfg *config.Config) string
	DefaultModel() string
	NewClient(ctx context.Context, cfg *config.Config) (TextGenerator, error)
}

// providers is the fixed selection order. The first usable candidate wins.
var providers = []Provider{
	openAIProvider{},
	anthropicProvider{},
	geminiProvider{},
}

// Session binds the selected provider name, its model and a ready client.
// It is immutable after construction and is the only carrier of provider
// state in the process.
type Session struct {
	Provider string
	Model    string
	Client   TextGenerator
}

// NewSession walks the provider list in priority order and returns a session
// for the first one whose credential is set and whose client initializes.
// It is meant to run once per process, before any generation. A missing
// credential or a failed initialization skips to the next candidate; running
// out of candidates returns ErrNoProvider.
func NewSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	for _, p := range providers {
		if p.Credential(cfg) == "" {
			log.Printf("%s API key not set, skipping", p.Name())
			continue
		}

		log.Printf("Attempting to use %s client", p.Name())
		client, err := p.NewClient(ctx, cfg)
		if err != nil {
			log.Printf("Failed to initialize %s client: %v", p.Name(), err)
			continue
		}

		log.Printf("Successfully initialized %s client with model %s", p.Name(), p.DefaultModel())
		return &Session{
			Provider: p.Name(),
			Model:    p.DefaultModel(),
			Client:   client,
		}, nil
	}

	return nil, ErrNoProvider
}

// Ready reports whether the session can serve completion calls.
func (s *Session) Ready() bool {
	return s != nil && s.Client != nil
}

// Close releases the session's client when it holds resources.
func (s *Session) Close() error {
	if s == nil || s.Client == nil {
		return nil
	}
	if c, ok := s.Client.(Closer); ok {
		return c.Close()
	}
	return nil
}
