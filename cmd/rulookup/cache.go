package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/rulookup/internal/cli"
	"github.com/at-ishikawa/rulookup/internal/config"
	"github.com/at-ishikawa/rulookup/internal/database"
	"github.com/at-ishikawa/rulookup/internal/dictionary"
)

func newCacheCommand() *cobra.Command {
	cacheCommand := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the response cache",
	}
	cacheCommand.AddCommand(
		newCacheListCommand(),
		newCacheShowCommand(),
		newCacheMigrateCommand(),
	)
	return cacheCommand
}

func newCacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the cached words",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openCacheStore()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			entries, err := store.FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("store.FindAll > %w", err)
			}
			return cli.NewSummaryPrinter(cmd.OutOrStdout()).PrintEntryList(entries)
		},
	}
}

func newCacheShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <word>",
		Short: "Print the cached API response for a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]

			store, closeStore, err := openCacheStore()
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			entry, err := store.Get(cmd.Context(), word)
			if errors.Is(err, dictionary.ErrCacheMiss) {
				return fmt.Errorf("no cached response for %s", word)
			}
			if err != nil {
				return fmt.Errorf("store.Get > %w", err)
			}
			return cli.NewSummaryPrinter(cmd.OutOrStdout()).PrintEntry(entry)
		},
	}
}

func newCacheMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the MySQL cache tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend != config.CacheBackendMySQL {
				return fmt.Errorf("cache.backend is %s, migrations only apply to %s", cfg.Cache.Backend, config.CacheBackendMySQL)
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open > %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("database.Migrate > %w", err)
			}
			return nil
		},
	}
}

func openCacheStore() (dictionary.Store, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, closeStore, err := newStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	if store == nil {
		return nil, nil, fmt.Errorf("the response cache is disabled (cache.backend: %s)", cfg.Cache.Backend)
	}
	return store, closeStore, nil
}
