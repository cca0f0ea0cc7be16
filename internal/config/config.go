package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM providers, in the order Load tries them.
const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type LLMConfig struct {
	Provider        string
	APIKey          string
	Endpoint        string
	Deployment      string
	EmbeddingModel  string
	APIVersion      string
	Model           string
	Temperature     float32
	MaxTokens       int
	RequestTimeout  time.Duration
	EmbeddingLength int
}

// Enabled reports whether a usable provider was configured.
func (c LLMConfig) Enabled() bool {
	return c.Provider != ""
}

type Config struct {
	Port               string
	PostgresURL        string
	LLM                LLMConfig
	RetrievalK         int
	MinResponseLength  int
	Locale             string
	TimeZone           string
	JWTSecret          string
	RateLimitPerMinute int
	CompletionCacheTTL time.Duration
	CORSOrigins        []string
}

var invalidKeys = map[string]bool{
	"your_azure_openai_api_key": true,
	"your_openai_api_key_here":  true,
	"your_api_key_here":         true,
	"sk-...":                    true,
	"sk-":                       true,
	"your-":                     true,
	"placeholder":               true,
}

var invalidEndpoints = map[string]bool{
	"https://your-resource.openai.azure.com/": true,
	"https://your-resource.openai.azure.com":  true,
	"your-endpoint":                           true,
	"placeholder":                             true,
}

var invalidDeployments = map[string]bool{
	"your_deployment_name":           true,
	"your_embedding_deployment_name": true,
	"your-deployment":                true,
	"placeholder":                    true,
}

func IsValidAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !invalidKeys[key]
}

func IsValidEndpoint(endpoint string) bool {
	endpoint = strings.TrimSpace(endpoint)
	return endpoint != "" && !invalidEndpoints[endpoint]
}

func IsValidDeployment(deployment string) bool {
	deployment = strings.TrimSpace(deployment)
	return deployment != "" && !invalidDeployments[deployment]
}

// Load reads .env when present and builds the configuration from the
// process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) *Config {
	env := func(key, defaultValue string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		Port:               env("PORT", "8080"),
		PostgresURL:        env("POSTGRES_URL", ""),
		RetrievalK:         envInt(env, "RETRIEVAL_K", 3),
		MinResponseLength:  envInt(env, "MIN_RESPONSE_LENGTH", 10),
		Locale:             env("LOCALE", "ko"),
		TimeZone:           env("TIME_ZONE", "Local"),
		JWTSecret:          env("JWT_SECRET", ""),
		RateLimitPerMinute: envInt(env, "RATE_LIMIT_PER_MINUTE", 30),
		CompletionCacheTTL: envDuration(env, "COMPLETION_CACHE_TTL", 30*time.Minute),
		CORSOrigins:        splitList(env("CORS_ORIGINS", "*")),
	}
	cfg.LLM = resolveLLM(env)
	return cfg
}

func resolveLLM(env func(string, string) string) LLMConfig {
	llm := LLMConfig{
		Temperature:     float32(envFloat(env, "DEFAULT_TEMPERATURE", 0.7)),
		MaxTokens:       envInt(env, "MAX_TOKENS", 2000),
		RequestTimeout:  envDuration(env, "LLM_TIMEOUT", 60*time.Second),
		EmbeddingLength: envInt(env, "EMBEDDING_DIMENSIONS", 1536),
	}

	preferred := strings.ToLower(env("LLM_PROVIDER", ""))
	candidates := []string{ProviderAzure, ProviderOpenAI, ProviderGemini}
	if preferred != "" {
		candidates = []string{preferred}
	}

	for _, provider := range candidates {
		switch provider {
		case ProviderAzure:
			key := env("AOAI_API_KEY", "")
			endpoint := env("AOAI_ENDPOINT", "")
			deployment := env("AOAI_DEPLOY_GPT4O", "")
			if !IsValidAPIKey(key) || !IsValidEndpoint(endpoint) || !IsValidDeployment(deployment) {
				continue
			}
			llm.Provider = ProviderAzure
			llm.APIKey = key
			llm.Endpoint = endpoint
			llm.Deployment = deployment
			llm.Model = deployment
			llm.APIVersion = env("AOAI_API_VERSION", "2024-05-01-preview")
			if embedding := env("AOAI_EMBEDDING_DEPLOYMENT", ""); IsValidDeployment(embedding) {
				llm.EmbeddingModel = embedding
			}
			return llm
		case ProviderOpenAI:
			key := env("OPENAI_API_KEY", "")
			if !IsValidAPIKey(key) {
				continue
			}
			llm.Provider = ProviderOpenAI
			llm.APIKey = key
			llm.Model = env("OPENAI_MODEL", "gpt-3.5-turbo")
			llm.EmbeddingModel = env("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")
			return llm
		case ProviderGemini:
			key := env("GEMINI_API_KEY", "")
			if !IsValidAPIKey(key) {
				continue
			}
			llm.Provider = ProviderGemini
			llm.APIKey = key
			llm.Model = env("GEMINI_MODEL", "gemini-1.5-flash")
			llm.EmbeddingModel = env("GEMINI_EMBEDDING_MODEL", "text-embedding-004")
			return llm
		default:
			log.Printf("Unsupported LLM_PROVIDER %q, running without a language model", provider)
		}
	}

	log.Println("No valid LLM credentials found, plans will use demo data")
	return llm
}

func envInt(env func(string, string) string, key string, defaultValue int) int {
	raw := env(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func envFloat(env func(string, string) string, key string, defaultValue float64) float64 {
	raw := env(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func envDuration(env func(string, string) string, key string, defaultValue time.Duration) time.Duration {
	raw := env(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
