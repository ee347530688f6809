package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/models"
)

// OpenAIClient implements both ClassificationProvider and GenerationProvider
// over the chat completions API. All text given to it must already be
// redacted by the caller.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewOpenAIClient(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

type classifyResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Classify asks the model to pick one category from the closed set and report
// its confidence. The returned category string is not validated here; the
// gated classifier owns coercion of unknown values.
func (c *OpenAIClient) Classify(ctx context.Context, text string, categories []models.Category) (string, float64, error) {
	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = string(cat)
	}

	prompt := fmt.Sprintf(`Classify the following case-management text into exactly one of these categories: %s.

Return the response as a JSON object with this structure:
{
    "category": "category_name",
    "confidence": 0.0
}

where confidence is your certainty between 0 and 1.

Text: %s`, strings.Join(names, ", "), text)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		return "", 0, fmt.Errorf("classification request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", 0, fmt.Errorf("classification request: empty response")
	}

	var parsed classifyResponse
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		c.logger.Error("failed to parse classification response",
			zap.Error(err),
			zap.String("response", content))
		return "", 0, fmt.Errorf("parse classification response: %w", err)
	}

	return parsed.Category, parsed.Confidence, nil
}

// Generate produces free-form text from a prompt. Used by the report
// synthesizer; any error triggers the caller's template fallback.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("generation request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generation request: empty response")
	}

	body := strings.TrimSpace(resp.Choices[0].Message.Content)
	if body == "" {
		return "", fmt.Errorf("generation request: blank completion")
	}
	return body, nil
}
