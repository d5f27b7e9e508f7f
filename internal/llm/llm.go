package llm

import (
	"context"

	"mealplan-assistant/internal/shared"
)

// ContentRequest describes a single completion call: a fixed system prompt
// establishing the assistant role plus the user prompt built from the profile.
type ContentRequest struct {
	SystemPrompt string
	UserPrompt   string
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, req ContentRequest) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
