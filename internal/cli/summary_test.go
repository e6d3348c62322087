package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/rulookup/internal/dictionary"
	"github.com/at-ishikawa/rulookup/internal/lookup"
	"github.com/at-ishikawa/rulookup/internal/openrussian"
)

func TestSummaryPrinter_PrintWritten(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name    string
		payload lookup.Payload
		want    string
	}{
		{
			name: "all found",
			payload: lookup.Payload{
				Count:   1,
				Results: []openrussian.Record{{Query: "мама", Found: true}},
			},
			want: "Wrote 1 result(s) to out.json\n",
		},
		{
			name: "some words without entry",
			payload: lookup.Payload{
				Count: 3,
				Results: []openrussian.Record{
					{Query: "мама", Found: true},
					{Query: "zzz"},
					{Query: "qqq"},
				},
			},
			want: "No entry for 2 word(s): zzz, qqq\nWrote 3 result(s) to out.json\n",
		},
		{
			name:    "empty payload",
			payload: lookup.Payload{Results: []openrussian.Record{}},
			want:    "Wrote 0 result(s) to out.json\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewSummaryPrinter(&buf).PrintWritten(tt.payload, "out.json"))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSummaryPrinter_PrintPartial(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	payload := lookup.Payload{Count: 1, Results: []openrussian.Record{{Query: "мама", Found: true}}}
	require.NoError(t, NewSummaryPrinter(&buf).PrintPartial(payload, "out.json", "кот"))
	assert.Equal(t, "Lookup stopped at кот. Wrote 1 result(s) to out.json\n", buf.String())
}

func TestSummaryPrinter_PrintEntry(t *testing.T) {
	var buf bytes.Buffer
	updatedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, NewSummaryPrinter(&buf).PrintEntry(&dictionary.DictionaryEntry{
		Word:       "кот",
		SourceType: dictionary.SourceTypeOpenRussian,
		SourceURL:  "https://api.openrussian.org/suggestions?q=%D0%BA%D0%BE%D1%82",
		Response:   json.RawMessage(`{"result":{"term":"кот"}}`),
		CreatedAt:  updatedAt,
		UpdatedAt:  updatedAt,
	}))

	got := buf.String()
	assert.Contains(t, got, "word: кот\n")
	assert.Contains(t, got, "source_type: openrussian\n")
	assert.Contains(t, got, "response:\n  result:\n    term: кот\n")
	assert.Contains(t, got, "updated_at: 2026-01-02T03:04:05Z\n")
}

func TestSummaryPrinter_PrintEntryList(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	updatedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, NewSummaryPrinter(&buf).PrintEntryList([]dictionary.DictionaryEntry{
		{Word: "дом", UpdatedAt: updatedAt},
		{Word: "кот", UpdatedAt: updatedAt},
	}))
	assert.Equal(t, "дом\t2026-01-02T03:04:05Z\nкот\t2026-01-02T03:04:05Z\n", buf.String())
}

func TestSummaryPrinter_PrintEntry_InvalidJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryPrinter(&buf).PrintEntry(&dictionary.DictionaryEntry{
		Word:     "кот",
		Response: json.RawMessage(`not json`),
	}))
	assert.Contains(t, buf.String(), "response: not json\n")
}
