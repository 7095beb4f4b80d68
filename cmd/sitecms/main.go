// Command sitecms manages the ShubhRaaj Interiors site content.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/shubhraaj/sitecms/internal/adapters/driven/config/file"
	"github.com/shubhraaj/sitecms/internal/adapters/driven/contentapi"
	"github.com/shubhraaj/sitecms/internal/adapters/driven/objectstore"
	"github.com/shubhraaj/sitecms/internal/adapters/driven/storage/bolt"
	"github.com/shubhraaj/sitecms/internal/adapters/driven/storage/memory"
	"github.com/shubhraaj/sitecms/internal/adapters/driven/storage/rediscache"
	"github.com/shubhraaj/sitecms/internal/adapters/driven/storage/sqlite"
	"github.com/shubhraaj/sitecms/internal/adapters/driven/watch"
	"github.com/shubhraaj/sitecms/internal/adapters/driving/cli"
	"github.com/shubhraaj/sitecms/internal/core/domain"
	"github.com/shubhraaj/sitecms/internal/core/ports/driven"
	"github.com/shubhraaj/sitecms/internal/core/services"
	"github.com/shubhraaj/sitecms/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	flags := cli.ParseGlobalFlags(os.Args[1:])

	configStore, err := file.NewConfigStore(flags.ConfigDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	logger.Init(logger.Config{
		Verbose:    flags.Verbose,
		JSONOutput: settings.Log.JSON,
	})
	log := logger.WithComponent("main")

	cache, schedulerStore := openCacheOrFallback(ctx, flags.ConfigDir, settings.Cache, log)
	defer func() {
		if err := cache.Close(); err != nil {
			log.Warn().Err(err).Msg("closing cache")
		}
	}()

	// The session manager is the gateway's token provider, so the gateway
	// is attached after both exist.
	notifier := services.NewNotifier()
	session := services.NewSessionManager(cache, nil, notifier)
	gateway := contentapi.NewClient(contentapi.Config{
		BaseURL:       settings.API.BaseURL,
		Timeout:       settings.API.Timeout,
		RatePerSecond: settings.API.RatePerSecond,
	}, session)
	session.SetGateway(gateway)

	content := services.NewContentStore(cache, gateway,
		services.WithNotifier(notifier),
		services.WithSyncPolicy(settings.Sync.Policy),
	)

	var uploader driven.ImageUploader
	if settings.Upload.IsConfigured() {
		u, err := objectstore.New(objectstore.Config{
			Endpoint:  settings.Upload.Endpoint,
			Bucket:    settings.Upload.Bucket,
			AccessKey: settings.Upload.AccessKey,
			SecretKey: settings.Upload.SecretKey,
			UseSSL:    settings.Upload.UseSSL,
			PublicURL: settings.Upload.PublicURL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("image uploads disabled")
		} else {
			uploader = u
		}
	}

	var watcher cli.Runner
	if pather, ok := cache.(driven.CachePather); ok {
		watcher = watch.New(pather.Path(), content)
	}

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Content:         content,
		Session:         session,
		Media:           services.NewMediaService(uploader, settings.Upload.FolderPrefix),
		Settings:        settingsService,
		Scheduler:       services.NewScheduler(settings.Scheduler, schedulerStore, content),
		SchedulerConfig: settings.Scheduler,
		Watcher:         watcher,
	})

	return cli.Execute(ctx)
}

// openCacheOrFallback opens the configured cache. When it cannot be opened
// the session runs on an in-memory cache, which starts from the default
// content and is lost on exit.
func openCacheOrFallback(
	ctx context.Context,
	configDir string,
	cfg domain.CacheSettings,
	log zerolog.Logger,
) (driven.ContentCache, driven.SchedulerStore) {
	cache, store, err := openCache(ctx, configDir, cfg)
	if err != nil {
		log.Warn().Err(err).Str("driver", string(cfg.Driver)).
			Msg("cache unavailable, changes are kept in memory for this session only")
		return memory.NewContentCache(), memory.NewSchedulerStore()
	}
	return cache, store
}

// openCache opens the configured cache driver and the scheduler store that goes with it.
func openCache(
	ctx context.Context,
	configDir string,
	cfg domain.CacheSettings,
) (driven.ContentCache, driven.SchedulerStore, error) {
	switch cfg.Driver {
	case domain.CacheDriverRedis:
		store, err := rediscache.NewStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("opening redis cache: %w", err)
		}
		return store, store.SchedulerStore(), nil

	case domain.CacheDriverMemory:
		return memory.NewContentCache(), memory.NewSchedulerStore(), nil

	case domain.CacheDriverBolt:
		dir, err := dataDir(configDir, cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		store, err := bolt.NewStore(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening bolt cache: %w", err)
		}
		return store, store.SchedulerStore(), nil

	default:
		dir, err := dataDir(configDir, cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		store, err := sqlite.NewStore(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite cache: %w", err)
		}
		return store, store.SchedulerStore(), nil
	}
}

// dataDir resolves the cache directory: the configured one, else data/
// under the config directory.
func dataDir(configDir, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return "", err
		}
		configDir = dir
	}
	return filepath.Join(configDir, "data"), nil
}
