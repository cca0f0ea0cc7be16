package prompt_fx

import (
	"go.uber.org/fx"

	"tripmate/internal/config"
	"tripmate/internal/normalizer"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

var Module = fx.Provide(
	ProvideNormalizer,
	services.NewPromptService,
	services.NewDemoService)

// ProvideNormalizer applies the configured locale and time zone.
func ProvideNormalizer(cfg *config.Config) *normalizer.Normalizer {
	return normalizer.New(
		normalizer.WithLocale(normalizer.LocaleByName(cfg.Locale)),
		normalizer.WithLocation(utils.LoadLocation(cfg.TimeZone)),
	)
}
