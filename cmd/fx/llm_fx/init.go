package llm_fx

import (
	"context"
	"log"

	"go.uber.org/fx"

	"tripmate/internal/config"
	"tripmate/pkg/utils"
)

var Module = fx.Provide(provideLLMClient)

// provideLLMClient returns a nil client when no provider is configured or the
// client cannot be built; planning then serves demo itineraries.
func provideLLMClient(lc fx.Lifecycle, cfg *config.Config) utils.LLMClientInterface {
	if !cfg.LLM.Enabled() {
		return nil
	}

	client, err := utils.NewLLMClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Printf("Error initializing %s client: %v", cfg.LLM.Provider, err)
		return nil
	}
	log.Printf("Initialized %s client with model: %s", client.Provider(), client.Model())

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}
