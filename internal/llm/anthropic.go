package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mealplan-assistant/internal/config"
	"mealplan-assistant/internal/shared"
)

const (
	anthropicAPIURL    = "https://api.anthropic.com/v1/messages"
	anthropicModel     = "claude-3-sonnet-20240229"
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 4000
)

// anthropicProvider is the second candidate in the selection order.
type anthropicProvider struct{}

func (anthropicProvider) Name() string { return "Anthropic" }

func (anthropicProvider) Credential(cfg *config.Config) string { return cfg.AnthropicAPIKey }

func (anthropicProvider) DefaultModel() string { return anthropicModel }

func (anthropicProvider) NewClient(_ context.Context, cfg *config.Config) (TextGenerator, error) {
	return NewAnthropicClient(cfg), nil
}

// anthropicClient is a client for the Anthropic messages API.
type anthropicClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewAnthropicClient creates a new Anthropic API client.
func NewAnthropicClient(cfg *config.Config) TextGenerator {
	return &anthropicClient{
		apiKey: cfg.AnthropicAPIKey,
		apiURL: anthropicAPIURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GenerateContent sends the prompts to the Anthropic model and returns the
// raw generated text. The messages API requires a max_tokens ceiling; the
// text is taken from content[0].text.
func (c *anthropicClient) GenerateContent(ctx context.Context, contentReq ContentRequest) (ContentResponse, error) {
	reqBody := map[string]interface{}{
		"model":      anthropicModel,
		"max_tokens": anthropicMaxTokens,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": contentReq.UserPrompt,
			},
		},
	}
	if contentReq.SystemPrompt != "" {
		reqBody["system"] = contentReq.SystemPrompt
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return ContentResponse{}, fmt.Errorf("anthropic api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return ContentResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Content) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	return ContentResponse{
		Content: apiResp.Content[0].Text,
		Usage: shared.TokenUsage{
			PromptTokens:     apiResp.Usage.InputTokens,
			CompletionTokens: apiResp.Usage.OutputTokens,
			TotalTokens:      apiResp.Usage.InputTokens + apiResp.Usage.OutputTokens,
			Model:            anthropicModel,
		},
	}, nil
}
