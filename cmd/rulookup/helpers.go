package main

import (
	"fmt"
	"time"

	"github.com/at-ishikawa/rulookup/internal/config"
	"github.com/at-ishikawa/rulookup/internal/database"
	"github.com/at-ishikawa/rulookup/internal/dictionary"
	"github.com/at-ishikawa/rulookup/internal/openrussian"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func clientConfig(cfg config.OpenRussianConfig) openrussian.Config {
	return openrussian.Config{
		BaseURL:         cfg.BaseURL,
		UserAgent:       cfg.UserAgent,
		Timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
		RetryAttempts:   cfg.RetryAttempts,
		BreakerFailures: cfg.BreakerFailures,
	}
}

// newStore opens the response cache configured by cache.backend.
// The returned store is nil when caching is disabled.
func newStore(cfg *config.Config) (dictionary.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		return nil, noop, nil
	case config.CacheBackendMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, noop, fmt.Errorf("database.Open > %w", err)
		}
		return dictionary.NewDBDictionaryRepository(db), db.Close, nil
	case config.CacheBackendFile:
		return dictionary.NewFileCache(cfg.Cache.Directory), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}
