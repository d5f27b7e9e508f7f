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
	openAIAPIURL = "https://api.openai.com/v1/chat/completions"
	openAIModel  = "gpt-3.5-turbo"
)

// openAIProvider is the first candidate in the selection order.
type openAIProvider struct{}

func (openAIProvider) Name() string { return "OpenAI" }

func (openAIProvider) Credential(cfg *config.Config) string { return cfg.OpenAIAPIKey }

func (openAIProvider) DefaultModel() string { return openAIModel }

func (openAIProvider) NewClient(_ context.Context, cfg *config.Config) (TextGenerator, error) {
	return NewOpenAIClient(cfg), nil
}

// openAIClient is a client for the OpenAI chat completions API.
type openAIClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI API client.
func NewOpenAIClient(cfg *config.Config) TextGenerator {
	return &openAIClient{
		apiKey: cfg.OpenAIAPIKey,
		apiURL: openAIAPIURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GenerateContent sends the prompts to the OpenAI model and returns the raw
// generated text. The request pins the JSON response format and a 0.7
// sampling temperature; the text is taken from choices[0].message.content.
func (c *openAIClient) GenerateContent(ctx context.Context, contentReq ContentRequest) (ContentResponse, error) {
	messages := make([]map[string]string, 0, 2)
	if contentReq.SystemPrompt != "" {
		messages = append(messages, map[string]string{
			"role":    "system",
			"content": contentReq.SystemPrompt,
		})
	}
	messages = append(messages, map[string]string{
		"role":    "user",
		"content": contentReq.UserPrompt,
	})

	reqBody := map[string]interface{}{
		"model":           openAIModel,
		"messages":        messages,
		"temperature":     0.7,
		"response_format": map[string]string{"type": "json_object"},
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
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return ContentResponse{}, fmt.Errorf("openai api error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return ContentResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	return ContentResponse{
		Content: apiResp.Choices[0].Message.Content,
		Usage: shared.TokenUsage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
			Model:            openAIModel,
		},
	}, nil
}
