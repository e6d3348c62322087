package lookup

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/rulookup/internal/dictionary"
	mock_lookup "github.com/at-ishikawa/rulookup/internal/mocks/lookup"
	"github.com/at-ishikawa/rulookup/internal/openrussian"
	"github.com/at-ishikawa/rulookup/internal/testutil"
)

func suggestion(word string, translations ...any) any {
	return map[string]any{
		"result": map[string]any{
			"term": word,
			"words": []any{
				map[string]any{
					"word": map[string]any{
						"ru":   word,
						"type": "noun",
						"tls":  []any{translations},
					},
				},
			},
		},
	}
}

func TestRunner_Run(t *testing.T) {
	t.Run("results keep input order when fetches complete out of order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_lookup.NewMockFetcher(ctrl)

		var others sync.WaitGroup
		others.Add(2)
		fetcher.EXPECT().Fetch(gomock.Any(), "мама").DoAndReturn(func(ctx context.Context, query string) (any, error) {
			others.Wait()
			return suggestion("мама", "mom"), nil
		})
		fetcher.EXPECT().Fetch(gomock.Any(), "кот").DoAndReturn(func(ctx context.Context, query string) (any, error) {
			defer others.Done()
			return suggestion("кот", "cat"), nil
		})
		fetcher.EXPECT().Fetch(gomock.Any(), "дом").DoAndReturn(func(ctx context.Context, query string) (any, error) {
			defer others.Done()
			return suggestion("дом", "house"), nil
		})

		payload, err := NewRunner(fetcher, 3, nil).Run(context.Background(), []string{"мама", "кот", "дом"})
		require.NoError(t, err)
		assert.Equal(t, 3, payload.Count)
		require.Len(t, payload.Results, 3)
		for i, want := range []struct {
			query       string
			translation string
		}{
			{"мама", "mom"},
			{"кот", "cat"},
			{"дом", "house"},
		} {
			assert.Equal(t, want.query, payload.Results[i].Query)
			assert.True(t, payload.Results[i].Found)
			assert.Equal(t, []string{want.translation}, payload.Results[i].Translation)
		}
	})

	t.Run("duplicate queries are looked up once per occurrence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_lookup.NewMockFetcher(ctrl)
		fetcher.EXPECT().Fetch(gomock.Any(), "кот").Return(suggestion("кот", "cat"), nil).Times(2)

		payload, err := NewRunner(fetcher, 2, nil).Run(context.Background(), []string{"кот", "кот"})
		require.NoError(t, err)
		assert.Equal(t, 2, payload.Count)
		assert.Equal(t, payload.Results[0], payload.Results[1])
	})

	t.Run("records without a match are kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_lookup.NewMockFetcher(ctrl)
		fetcher.EXPECT().Fetch(gomock.Any(), "zzz").Return(map[string]any{
			"result": map[string]any{"term": "zzz", "words": []any{}},
		}, nil)

		payload, err := NewRunner(fetcher, 1, nil).Run(context.Background(), []string{"zzz"})
		require.NoError(t, err)
		require.Len(t, payload.Results, 1)
		assert.False(t, payload.Results[0].Found)
		require.NotNil(t, payload.Results[0].Word)
		assert.Equal(t, "zzz", *payload.Results[0].Word)
		assert.Nil(t, payload.Results[0].Translation)
	})

	t.Run("no queries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_lookup.NewMockFetcher(ctrl)

		payload, err := NewRunner(fetcher, 1, nil).Run(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoQueries)
		assert.Equal(t, 0, payload.Count)
		assert.Empty(t, payload.Results)
	})
}

func TestRunner_Run_FetchFailure(t *testing.T) {
	errUnavailable := errors.New("service unavailable")

	t.Run("sequential run keeps the records before the failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_lookup.NewMockFetcher(ctrl)
		gomock.InOrder(
			fetcher.EXPECT().Fetch(gomock.Any(), "мама").Return(suggestion("мама", "mom"), nil),
			fetcher.EXPECT().Fetch(gomock.Any(), "кот").Return(nil, errUnavailable),
		)

		payload, err := NewRunner(fetcher, 1, nil).Run(context.Background(), []string{"мама", "кот", "дом"})
		require.Error(t, err)
		assert.ErrorIs(t, err, errUnavailable)

		var queryErr *QueryError
		require.True(t, errors.As(err, &queryErr))
		assert.Equal(t, "кот", queryErr.Query)
		assert.Equal(t, 1, queryErr.Index)

		assert.Equal(t, 1, payload.Count)
		require.Len(t, payload.Results, 1)
		assert.Equal(t, "мама", payload.Results[0].Query)
	})

	t.Run("failure of the first query leaves an empty payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_lookup.NewMockFetcher(ctrl)
		fetcher.EXPECT().Fetch(gomock.Any(), "мама").Return(nil, errUnavailable)

		payload, err := NewRunner(fetcher, 1, nil).Run(context.Background(), []string{"мама", "кот"})
		assert.ErrorIs(t, err, errUnavailable)
		assert.Equal(t, 0, payload.Count)
		assert.NotNil(t, payload.Results)
	})

	t.Run("concurrent failure cancels outstanding fetches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_lookup.NewMockFetcher(ctrl)
		fetcher.EXPECT().Fetch(gomock.Any(), "мама").DoAndReturn(func(ctx context.Context, query string) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).MaxTimes(1)
		fetcher.EXPECT().Fetch(gomock.Any(), "кот").Return(nil, errUnavailable)

		payload, err := NewRunner(fetcher, 2, nil).Run(context.Background(), []string{"мама", "кот"})
		assert.ErrorIs(t, err, errUnavailable)
		assert.Equal(t, 0, payload.Count)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		fetcher := mock_lookup.NewMockFetcher(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		payload, err := NewRunner(fetcher, 2, nil).Run(ctx, []string{"мама", "кот"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, payload.Count)
	})
}

func TestNewRunner(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		want        int
	}{
		{name: "zero falls back to the default", concurrency: 0, want: DefaultConcurrency},
		{name: "negative falls back to the default", concurrency: -3, want: DefaultConcurrency},
		{name: "sequential", concurrency: 1, want: 1},
		{name: "capped", concurrency: 100, want: MaxConcurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRunner(nil, tt.concurrency, nil).concurrency)
		})
	}
}

func TestRunner_Run_LongQueryThroughFileCache(t *testing.T) {
	longQuery := strings.Repeat("слово ", 25)
	server := testutil.NewSuggestionServer(t, map[string]string{
		"кот":     `{"result": {"term": "кот", "words": [{"word": {"ru": "кот", "tls": [["cat"]]}}]}}`,
		longQuery: `{"result": {"term": "слово", "words": [{"word": {"ru": "сло'во", "tls": [["word"]]}}]}}`,
	})
	client := openrussian.NewClient(openrussian.Config{BaseURL: server.URL}, nil)
	defer func() { _ = client.Close() }()
	fetcher := dictionary.NewCachedFetcher(client, dictionary.NewFileCache(t.TempDir()), nil)

	payload, err := NewRunner(fetcher, 1, nil).Run(context.Background(), []string{"кот", longQuery})
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Count)
	assert.True(t, payload.Results[1].Found)
	assert.Equal(t, []string{"word"}, payload.Results[1].Translation)
	assert.Equal(t, int32(2), server.Requests())
}
