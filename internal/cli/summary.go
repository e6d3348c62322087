package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/rulookup/internal/dictionary"
	"github.com/at-ishikawa/rulookup/internal/lookup"
)

// SummaryPrinter reports the outcome of lookup commands on a terminal.
type SummaryPrinter struct {
	stdoutWriter io.Writer
	bold         *color.Color
	green        *color.Color
	yellow       *color.Color
	red          *color.Color
}

func NewSummaryPrinter(stdoutWriter io.Writer) *SummaryPrinter {
	return &SummaryPrinter{
		stdoutWriter: stdoutWriter,
		bold:         color.New(color.Bold),
		green:        color.New(color.FgGreen),
		yellow:       color.New(color.FgYellow),
		red:          color.New(color.FgRed),
	}
}

// PrintWritten lists the queries without a dictionary entry and the output location.
func (p *SummaryPrinter) PrintWritten(payload lookup.Payload, path string) error {
	var missing []string
	for _, record := range payload.Results {
		if !record.Found {
			missing = append(missing, record.Query)
		}
	}
	if len(missing) > 0 {
		if _, err := p.yellow.Fprintf(p.stdoutWriter, "No entry for %d word(s): %s\n",
			len(missing),
			strings.Join(missing, ", "),
		); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	if _, err := p.green.Fprintf(p.stdoutWriter, "Wrote %d result(s) to %s\n", payload.Count, path); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

// PrintPartial reports the records kept from a run that stopped on query.
func (p *SummaryPrinter) PrintPartial(payload lookup.Payload, path string, query string) error {
	if _, err := p.red.Fprintf(p.stdoutWriter, "Lookup stopped at %s. Wrote %d result(s) to %s\n",
		p.bold.Sprint(query),
		payload.Count,
		path,
	); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

// PrintEntry shows a cached response as YAML.
func (p *SummaryPrinter) PrintEntry(entry *dictionary.DictionaryEntry) error {
	enc := yaml.NewEncoder(p.stdoutWriter)
	enc.SetIndent(2)
	if err := enc.Encode(entry); err != nil {
		return fmt.Errorf("yaml.Encode > %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("yaml.Close > %w", err)
	}
	return nil
}

// PrintEntryList prints one line per cached word with its last update time.
func (p *SummaryPrinter) PrintEntryList(entries []dictionary.DictionaryEntry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(p.stdoutWriter, "%s\t%s\n",
			p.bold.Sprint(entry.Word),
			entry.UpdatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	return nil
}
