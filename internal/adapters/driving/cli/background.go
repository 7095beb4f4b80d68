package cli

import (
	"context"
	"sync"

	"github.com/shubhraaj/sitecms/internal/logger"
)

// startBackground runs the scheduler (when enabled) and the cache watcher
// for long-running commands. The returned function stops both and waits.
func startBackground(ctx context.Context) func() {
	log := logger.WithComponent("cli")
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	if scheduler != nil && schedulerConfig.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := scheduler.Start(ctx); err != nil {
				log.Warn().Err(err).Msg("scheduler stopped")
			}
		}()
	}

	if cacheWatcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := cacheWatcher.Run(ctx); err != nil {
				log.Warn().Err(err).Msg("cache watcher stopped")
			}
		}()
	}

	return func() {
		cancel()
		if scheduler != nil && schedulerConfig.Enabled {
			if err := scheduler.Stop(); err != nil {
				log.Warn().Err(err).Msg("scheduler stop")
			}
		}
		wg.Wait()
	}
}
