package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatJSON, FormatYAML}
)

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if strings.EqualFold(val, string(format)) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "format"
}

// FormatFromPath infers the format from the file extension of path. Anything other than
// .yml or .yaml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
