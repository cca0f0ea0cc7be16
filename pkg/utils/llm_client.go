package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"

	"tripmate/internal/config"
)

const TravelPlannerSystemPrompt = "당신은 전문 여행 플래너입니다. 사용자의 요구사항에 맞는 상세하고 실용적인 여행 계획을 제공해주세요."

// LLMClientInterface is the language model used for completions and for the
// embeddings behind document retrieval.
type LLMClientInterface interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	Provider() string
	Model() string
	Close() error
}

// NewLLMClient builds the client for the configured provider.
func NewLLMClient(ctx context.Context, cfg config.LLMConfig) (LLMClientInterface, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderAzure, config.ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case "":
		return nil, ErrUpstreamUnavailable
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
