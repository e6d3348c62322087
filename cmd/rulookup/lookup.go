package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/rulookup/internal/cli"
	"github.com/at-ishikawa/rulookup/internal/config"
	"github.com/at-ishikawa/rulookup/internal/dictionary"
	"github.com/at-ishikawa/rulookup/internal/lookup"
	"github.com/at-ishikawa/rulookup/internal/openrussian"
	"github.com/at-ishikawa/rulookup/internal/output"
)

type lookupOptions struct {
	inFile      string
	outFile     string
	pretty      bool
	format      output.Format
	concurrency int
	noCache     bool
}

func newLookupCommand() *cobra.Command {
	var options lookupOptions
	command := &cobra.Command{
		Use:   "lookup [words...]",
		Short: "Look up words and write the results to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			queries, err := collectQueries(options.inFile, args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("out") {
				options.outFile = cfg.Lookup.Output
			}
			if !flags.Changed("concurrency") {
				options.concurrency = cfg.Lookup.Concurrency
			}
			if !flags.Changed("format") {
				options.format = resolveFormat(options.outFile, cfg.Lookup.Format)
			}

			return runLookup(cmd.Context(), cmd.OutOrStdout(), cfg, queries, options)
		},
	}

	flags := command.Flags()
	flags.StringVar(&options.inFile, "in", "", "file with one word per line")
	flags.StringVar(&options.outFile, "out", "", "output file (default: lookup.output in the config)")
	flags.BoolVar(&options.pretty, "pretty", false, "indent JSON output")
	flags.Var(&options.format, "format", fmt.Sprintf("output format. Possible values are %v", []output.Format{output.FormatJSON, output.FormatYAML}))
	flags.IntVar(&options.concurrency, "concurrency", lookup.DefaultConcurrency, "number of parallel requests")
	flags.BoolVar(&options.noCache, "no-cache", false, "always query the API and do not store responses")
	return command
}

// collectQueries returns the words of inFile followed by args.
func collectQueries(inFile string, args []string) ([]string, error) {
	var queries []string
	if inFile != "" {
		words, err := lookup.ReadWordList(inFile)
		if err != nil {
			return nil, fmt.Errorf("lookup.ReadWordList > %w", err)
		}
		queries = append(queries, words...)
	}
	queries = append(queries, args...)
	if len(queries) == 0 {
		return nil, lookup.ErrNoQueries
	}
	return queries, nil
}

// resolveFormat prefers a YAML file extension over the configured format.
func resolveFormat(outFile string, configured string) output.Format {
	if output.FormatFromPath(outFile) == output.FormatYAML {
		return output.FormatYAML
	}
	return output.Format(configured)
}

func runLookup(ctx context.Context, stdout io.Writer, cfg *config.Config, queries []string, options lookupOptions) error {
	client := openrussian.NewClient(clientConfig(cfg.OpenRussian), slog.Default())
	defer func() { _ = client.Close() }()

	var fetcher lookup.Fetcher = client
	if !options.noCache {
		store, closeStore, err := newStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()
		if store != nil {
			fetcher = dictionary.NewCachedFetcher(client, store, slog.Default())
		}
	}

	payload, runErr := lookup.NewRunner(fetcher, options.concurrency, slog.Default()).Run(ctx, queries)
	writer := output.NewWriter(options.format, options.pretty)
	printer := cli.NewSummaryPrinter(stdout)
	if runErr != nil {
		var queryErr *lookup.QueryError
		if payload.Count > 0 && errors.As(runErr, &queryErr) {
			if err := writer.WriteFile(options.outFile, payload); err != nil {
				return fmt.Errorf("writer.WriteFile > %w (lookup error: %v)", err, runErr)
			}
			if err := printer.PrintPartial(payload, options.outFile, queryErr.Query); err != nil {
				return err
			}
		}
		return fmt.Errorf("runner.Run > %w", runErr)
	}

	if err := writer.WriteFile(options.outFile, payload); err != nil {
		return fmt.Errorf("writer.WriteFile > %w", err)
	}
	return printer.PrintWritten(payload, options.outFile)
}
