package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tripmate/internal/config"
	"tripmate/internal/infra"
	"tripmate/internal/normalizer"
	"tripmate/internal/repositories"
	"tripmate/internal/services"
	mem "tripmate/pkg/memcache"
	"tripmate/pkg/utils"
)

// Viper keys shared by the commands.
const (
	KeyLocale   = "locale"
	KeyTimeZone = "time_zone"
)

func newNormalizer() *normalizer.Normalizer {
	return normalizer.New(
		normalizer.WithLocale(normalizer.LocaleByName(viper.GetString(KeyLocale))),
		normalizer.WithLocation(utils.LoadLocation(viper.GetString(KeyTimeZone))),
	)
}

// runtime holds the services a command needs plus the cleanup for them.
type runtime struct {
	planner   services.PlannerServiceInterface
	retrieval services.RetrievalServiceInterface
	close     func()
}

// newRuntime wires the planner the same way the server does, from the
// process environment. Missing credentials or database leave the matching
// feature disabled.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg := config.Load()
	n := newNormalizer()

	demo, err := services.NewDemoService(n)
	if err != nil {
		return nil, err
	}

	db, err := infra.InitPostgresql(cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	var planRepo repositories.IPlanRepository
	var docRepo repositories.IDocumentRepository
	if db != nil {
		planRepo = repositories.NewPlanRepository(db)
		docRepo = repositories.NewDocumentRepository(db)
	}

	var llm utils.LLMClientInterface
	if cfg.LLM.Enabled() {
		client, err := utils.NewLLMClient(ctx, cfg.LLM)
		if err != nil {
			infra.ClosePostgresql(db)
			return nil, err
		}
		llm = client
	}

	retrieval := services.NewRetrievalService(llm, docRepo)
	planner := services.NewPlannerService(services.NewPromptService(), demo, retrieval, llm, planRepo,
		mem.NewCompletionCache(), n, services.PlannerOptions{
			RetrievalK:        cfg.RetrievalK,
			MinResponseLength: cfg.MinResponseLength,
			CacheTTL:          cfg.CompletionCacheTTL,
			RequestTimeout:    cfg.LLM.RequestTimeout,
			Temperature:       cfg.LLM.Temperature,
			MaxTokens:         cfg.LLM.MaxTokens,
		})

	return &runtime{
		planner:   planner,
		retrieval: retrieval,
		close: func() {
			if llm != nil {
				llm.Close()
			}
			infra.ClosePostgresql(db)
		},
	}, nil
}

// readInput reads a file argument, or stdin when the argument is "-" or absent.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}

// loadRequestFile decodes a YAML (or JSON, which YAML accepts) request file.
func loadRequestFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
