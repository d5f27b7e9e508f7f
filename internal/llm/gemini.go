package llm

import (
	"context"
	"fmt"

	"mealplan-assistant/internal/config"
	"mealplan-assistant/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-pro"

// geminiProvider is the last candidate in the selection order.
type geminiProvider struct{}

func (geminiProvider) Name() string { return "Gemini" }

func (geminiProvider) Credential(cfg *config.Config) string { return cfg.GeminiAPIKey }

func (geminiProvider) DefaultModel() string { return geminiModel }

func (geminiProvider) NewClient(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	return NewGeminiClient(ctx, cfg)
}

// geminiClient is a client for the Google Gemini API.
type geminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client}, nil
}

// GenerateContent sends the prompts to the Gemini model and returns the raw
// generated text. The model is pinned to a JSON response MIME type and a 0.7
// sampling temperature; the text is taken from the first candidate part.
func (c *geminiClient) GenerateContent(ctx context.Context, contentReq ContentRequest) (ContentResponse, error) {
	model := c.client.GenerativeModel(geminiModel)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.7)
	if contentReq.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(contentReq.SystemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(contentReq.UserPrompt))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return ContentResponse{}, fmt.Errorf("generated content is not text")
	}

	usage := shared.TokenUsage{Model: geminiModel}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{
		Content: string(text),
		Usage:   usage,
	}, nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}
