package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"

	"simplifytour/pkg/logger"
	mem "simplifytour/pkg/memcache"
)

const purgeInterval = 10 * time.Minute

var Module = fx.Provide(provideResetTokenStore)

func provideResetTokenStore(lc fx.Lifecycle, log logger.Logger) mem.ResetTokenStore {
	store := mem.NewResetTokens()
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(purgeInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						if n := store.Purge(); n > 0 {
							log.Debug("purged ", n, " expired reset tokens")
						}
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			close(done)
			return nil
		},
	})
	return store
}
