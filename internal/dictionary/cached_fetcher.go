package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/rulookup/internal/openrussian"
)

//go:generate mockgen -source=cached_fetcher.go -destination=../mocks/dictionary/mock_fetcher.go -package=mock_dictionary

// RawFetcher fetches undecoded API responses.
type RawFetcher interface {
	FetchRaw(ctx context.Context, query string) ([]byte, error)
	SuggestionsURL(query string) string
}

// CachedFetcher serves suggestion payloads from a Store and falls back to the API on a miss.
// Only successful responses are cached. Store failures are logged and never fail a fetch.
type CachedFetcher struct {
	fetcher RawFetcher
	store   Store
	log     *slog.Logger
}

func NewCachedFetcher(fetcher RawFetcher, store Store, logger *slog.Logger) *CachedFetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedFetcher{
		fetcher: fetcher,
		store:   store,
		log:     logger.With("component", "dictionary_cache"),
	}
}

// Fetch returns the decoded payload for query.
func (c *CachedFetcher) Fetch(ctx context.Context, query string) (any, error) {
	entry, err := c.store.Get(ctx, query)
	switch {
	case err == nil:
		payload, decodeErr := openrussian.Decode(entry.Response)
		if decodeErr == nil {
			c.log.DebugContext(ctx, "cache hit", "query", query)
			return payload, nil
		}
		c.log.WarnContext(ctx, "discarding unreadable cache entry", "query", query, "error", decodeErr)
	case errors.Is(err, ErrCacheMiss):
		c.log.DebugContext(ctx, "cache miss", "query", query)
	default:
		// an unusable cache must not fail the lookup
		c.log.WarnContext(ctx, "failed to read cached response", "query", query, "error", err)
	}

	body, err := c.fetcher.FetchRaw(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetcher.FetchRaw > %w", err)
	}
	payload, err := openrussian.Decode(body)
	if err != nil {
		return nil, err
	}

	if err := c.store.Put(ctx, &DictionaryEntry{
		Word:       query,
		SourceType: SourceTypeOpenRussian,
		SourceURL:  c.fetcher.SuggestionsURL(query),
		Response:   body,
	}); err != nil {
		c.log.WarnContext(ctx, "failed to store response", "query", query, "error", err)
	}
	return payload, nil
}
