package ratelimit_fx

import (
	"context"
	"log"
	"time"

	"go.uber.org/fx"

	"tripmate/internal/config"
	"tripmate/pkg/middleware"
)

const (
	sweepInterval = 5 * time.Minute
	clientIdleTTL = 10 * time.Minute
)

var Module = fx.Provide(provideRateLimiter)

// provideRateLimiter returns nil when limiting is off. Otherwise it also runs a
// janitor that forgets idle clients.
func provideRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	if limiter == nil {
		return nil
	}
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := limiter.Sweep(clientIdleTTL); n > 0 {
							log.Printf("Evicted %d idle rate-limit clients", n)
						}
					case <-stop:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return limiter
}
