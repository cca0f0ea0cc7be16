package config_fx

import (
	"go.uber.org/fx"

	"tripmate/internal/config"
)

var Module = fx.Provide(config.Load)
