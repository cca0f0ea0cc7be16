package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv(envMap(nil))

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 3, cfg.RetrievalK)
	assert.Equal(t, 10, cfg.MinResponseLength)
	assert.Equal(t, "ko", cfg.Locale)
	assert.Equal(t, 30*time.Minute, cfg.CompletionCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.LLM.Enabled())
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
}

func TestFromEnv_AzureWinsOverOpenAI(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"AOAI_API_KEY":              "azure-key",
		"AOAI_ENDPOINT":             "https://trip.openai.azure.com/",
		"AOAI_DEPLOY_GPT4O":         "gpt-4o",
		"AOAI_EMBEDDING_DEPLOYMENT": "embed-small",
		"OPENAI_API_KEY":            "sk-real",
	}))

	assert.Equal(t, ProviderAzure, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "embed-small", cfg.LLM.EmbeddingModel)
	assert.Equal(t, "2024-05-01-preview", cfg.LLM.APIVersion)
}

func TestFromEnv_PlaceholderAzureFallsThrough(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"AOAI_API_KEY":      "your_azure_openai_api_key",
		"AOAI_ENDPOINT":     "https://your-resource.openai.azure.com/",
		"AOAI_DEPLOY_GPT4O": "your_deployment_name",
		"OPENAI_API_KEY":    "sk-live",
		"OPENAI_MODEL":      "gpt-4o-mini",
	}))

	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestFromEnv_ExplicitProvider(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"LLM_PROVIDER":   "gemini",
		"OPENAI_API_KEY": "sk-live",
		"GEMINI_API_KEY": "gm-key",
	}))

	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
}

func TestFromEnv_InvalidNumbersKeepDefaults(t *testing.T) {
	cfg := FromEnv(envMap(map[string]string{
		"RETRIEVAL_K":          "three",
		"DEFAULT_TEMPERATURE":  "warm",
		"COMPLETION_CACHE_TTL": "soon",
		"CORS_ORIGINS":         "https://a.example, https://b.example",
	}))

	assert.Equal(t, 3, cfg.RetrievalK)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.Equal(t, 30*time.Minute, cfg.CompletionCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestValidators(t *testing.T) {
	assert.False(t, IsValidAPIKey(" sk- "))
	assert.False(t, IsValidAPIKey(""))
	assert.True(t, IsValidAPIKey("sk-abc"))
	assert.False(t, IsValidEndpoint("your-endpoint"))
	assert.False(t, IsValidDeployment("placeholder"))
	assert.True(t, IsValidDeployment("gpt-4o"))
}
