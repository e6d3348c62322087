// Package output persists lookup results to files.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Writer serializes a value to a file in a fixed format.
type Writer struct {
	format Format
	pretty bool
}

func NewWriter(format Format, pretty bool) *Writer {
	if format == "" {
		format = FormatJSON
	}
	return &Writer{
		format: format,
		pretty: pretty,
	}
}

// WriteFile writes data to path, creating parent directories as needed.
func (w *Writer) WriteFile(path string, data any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create > %w", err)
	}
	if err := w.Encode(f, data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("f.Close > %w", err)
	}
	return nil
}

// Encode writes data to out. JSON keeps non-ASCII text unescaped.
func (w *Writer) Encode(out io.Writer, data any) error {
	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("yaml.Encode > %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("yaml.Close > %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		if w.pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("json.Encode > %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}
