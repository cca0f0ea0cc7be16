package planner_fx

import (
	"go.uber.org/fx"

	"tripmate/internal/config"
	"tripmate/internal/normalizer"
	"tripmate/internal/repositories"
	"tripmate/internal/services"
	mem "tripmate/pkg/memcache"
	"tripmate/pkg/utils"
)

var Module = fx.Provide(ProvidePlannerService)

func ProvidePlannerService(
	cfg *config.Config,
	prompts services.PromptServiceInterface,
	demo services.DemoServiceInterface,
	retrieval services.RetrievalServiceInterface,
	llm utils.LLMClientInterface,
	planRepo repositories.IPlanRepository,
	cache mem.CompletionStore,
	n *normalizer.Normalizer,
) services.PlannerServiceInterface {
	return services.NewPlannerService(prompts, demo, retrieval, llm, planRepo, cache, n,
		services.PlannerOptions{
			RetrievalK:        cfg.RetrievalK,
			MinResponseLength: cfg.MinResponseLength,
			CacheTTL:          cfg.CompletionCacheTTL,
			RequestTimeout:    cfg.LLM.RequestTimeout,
			Temperature:       cfg.LLM.Temperature,
			MaxTokens:         cfg.LLM.MaxTokens,
		})
}
