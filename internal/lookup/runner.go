// Package lookup runs batches of word queries against a suggestion fetcher and assembles the
// ordered result payload.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/rulookup/internal/openrussian"
)

//go:generate mockgen -source=runner.go -destination=../mocks/lookup/mock_fetcher.go -package=mock_lookup

// Fetcher returns the decoded suggestion payload for a query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (any, error)
}

// ErrNoQueries is returned when a run is started without any query.
var ErrNoQueries = errors.New("provide at least one word or --in file")

const (
	DefaultConcurrency = 4
	MaxConcurrency     = 32
)

// Payload is the aggregate result of a run. Results are in input order.
type Payload struct {
	Count   int                  `json:"count" yaml:"count"`
	Results []openrussian.Record `json:"results" yaml:"results"`
}

func newPayload(records []openrussian.Record) Payload {
	if records == nil {
		records = []openrussian.Record{}
	}
	return Payload{
		Count:   len(records),
		Results: records,
	}
}

// QueryError reports the query whose fetch stopped a run.
type QueryError struct {
	Query string
	Index int
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("lookup %q (#%d) > %v", e.Query, e.Index+1, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

type Runner struct {
	fetcher     Fetcher
	concurrency int
	log         *slog.Logger
}

// NewRunner creates a Runner. A concurrency below 1 falls back to DefaultConcurrency.
func NewRunner(fetcher Fetcher, concurrency int, logger *slog.Logger) *Runner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	if concurrency > MaxConcurrency {
		concurrency = MaxConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		fetcher:     fetcher,
		concurrency: concurrency,
		log:         logger.With("component", "lookup"),
	}
}

// Run looks up every query and returns one record per query in input order.
// Duplicated queries are looked up once per occurrence.
//
// The first fetch failure stops the run. The returned payload then holds the records of the
// queries before the first one that did not complete, and the error is a *QueryError.
func (r *Runner) Run(ctx context.Context, queries []string) (Payload, error) {
	if len(queries) == 0 {
		return newPayload(nil), ErrNoQueries
	}

	records := make([]openrussian.Record, len(queries))
	done := make([]bool, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, query := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &QueryError{Query: query, Index: i, Err: err}
			}
			raw, err := r.fetcher.Fetch(gctx, query)
			if err != nil {
				r.log.WarnContext(gctx, "lookup failed", "query", query, "error", err)
				return &QueryError{Query: query, Index: i, Err: err}
			}
			records[i] = openrussian.BuildRecord(query, raw)
			done[i] = true
			r.log.DebugContext(gctx, "looked up", "query", query, "found", records[i].Found)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		return newPayload(records), nil
	}

	completed := 0
	for completed < len(done) && done[completed] {
		completed++
	}
	return newPayload(records[:completed:completed]), err
}
