package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is the opaque text-generation capability used by the pipeline.
type Client interface {
	// GenerateContent generates text for prompt using the specified model tier.
	// Failures are *PolicyError when the provider refused the content and *TransportError otherwise.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var client Client
	switch config.Provider {
	case ProviderGemini:
		c, err := NewGeminiClient(ctx, config, apiKey)
		if err != nil {
			return nil, err
		}
		client = c
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}

	if config.RequestsPerSecond > 0 {
		client = NewRateLimited(client, config.RequestsPerSecond, config.Burst)
	}
	return client, nil
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", &TransportError{Message: fmt.Sprintf("no model configured for tier %s", tier)}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.Temperature)
	if limit := c.config.OutputLimit(tier); limit > 0 {
		model.SetMaxOutputTokens(limit)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}

	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// classifyError separates content-policy refusals from every other failure.
func classifyError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return &PolicyError{Reason: blockReason(blocked), Cause: err}
	}
	return &TransportError{Message: "failed to generate content", Cause: err}
}

func blockReason(blocked *genai.BlockedError) string {
	switch {
	case blocked.PromptFeedback != nil:
		return fmt.Sprintf("prompt blocked: %s", blocked.PromptFeedback.BlockReason)
	case blocked.Candidate != nil:
		return fmt.Sprintf("response blocked: %s", blocked.Candidate.FinishReason)
	default:
		return "blocked"
	}
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", &PolicyError{Reason: fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason)}
		}
		return "", &TransportError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety || candidate.FinishReason == genai.FinishReasonRecitation {
		return "", &PolicyError{Reason: fmt.Sprintf("response blocked: %s", candidate.FinishReason)}
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		// An empty answer is a valid result; callers decide how to fall back.
		return "", nil
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	return strings.Join(parts, ""), nil
}
