package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"

	"tripmate/internal/config"
)

// OpenAIClient talks to OpenAI or, when an endpoint is configured, to an
// Azure OpenAI deployment.
type OpenAIClient struct {
	client         *openai.Client
	provider       string
	model          string
	embeddingModel string
	temperature    float32
	maxTokens      int
}

func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	var clientConfig openai.ClientConfig
	if cfg.Provider == config.ProviderAzure {
		clientConfig = openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
		clientConfig.APIVersion = cfg.APIVersion
		deployments := map[string]string{cfg.Model: cfg.Deployment}
		if cfg.EmbeddingModel != "" {
			deployments[cfg.EmbeddingModel] = cfg.EmbeddingModel
		}
		clientConfig.AzureModelMapperFunc = func(model string) string {
			if deployment, ok := deployments[model]; ok {
				return deployment
			}
			return model
		}
	} else {
		clientConfig = openai.DefaultConfig(cfg.APIKey)
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(clientConfig),
		provider:       cfg.Provider,
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    cfg.Temperature,
		maxTokens:      cfg.MaxTokens,
	}
}

func (c *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: TravelPlannerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUnexpectedBehaviorOfAI)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if c.embeddingModel == "" {
		return pgvector.Vector{}, ErrRetrievalDisabled
	}
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("%w: no embedding returned", ErrUnexpectedBehaviorOfAI)
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

func (c *OpenAIClient) Provider() string { return c.provider }

func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) Close() error { return nil }
