package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"

	"tripmate/internal/config"
)

// GeminiClient implements LLMClientInterface using Google's Gemini models
type GeminiClient struct {
	client         *genai.Client
	model          string
	embeddingModel string
	temperature    float32
	maxTokens      int
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:         client,
		model:          model,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    cfg.Temperature,
		maxTokens:      cfg.MaxTokens,
	}, nil
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(c.temperature)
	if c.maxTokens > 0 {
		m.SetMaxOutputTokens(int32(c.maxTokens))
	}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(TravelPlannerSystemPrompt)}}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content", ErrUnexpectedBehaviorOfAI)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (c *GeminiClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if c.embeddingModel == "" {
		return pgvector.Vector{}, ErrRetrievalDisabled
	}
	res, err := c.client.EmbeddingModel(c.embeddingModel).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("%w: gemini embedding: %v", ErrUpstreamUnavailable, err)
	}
	if res == nil || res.Embedding == nil {
		return pgvector.Vector{}, fmt.Errorf("%w: empty embedding", ErrUnexpectedBehaviorOfAI)
	}
	return pgvector.NewVector(res.Embedding.Values), nil
}

func (c *GeminiClient) Provider() string { return config.ProviderGemini }

func (c *GeminiClient) Model() string { return c.model }

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
