package lookup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadWordList reads one query per line from path.
func ReadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer f.Close()

	words, err := ParseWordList(f)
	if err != nil {
		return nil, fmt.Errorf("ParseWordList(%s) > %w", path, err)
	}
	return words, nil
}

// ParseWordList trims every line, skips empty ones and drops bytes that are not valid UTF-8.
func ParseWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		word := strings.TrimSpace(strings.ToValidUTF8(scanner.Text(), ""))
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner.Err > %w", err)
	}
	return words, nil
}
