package memcache_fx

import (
	"context"
	"log"
	"time"

	"go.uber.org/fx"

	mem "tripmate/pkg/memcache"
)

const purgeInterval = 5 * time.Minute

var Module = fx.Provide(provideCompletionCache)

// provideCompletionCache also runs a janitor that drops expired completions.
func provideCompletionCache(lc fx.Lifecycle) mem.CompletionStore {
	cache := mem.NewCompletionCache()
	stop := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(purgeInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := cache.Purge(); n > 0 {
							log.Printf("Purged %d expired completions", n)
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
	return cache
}
