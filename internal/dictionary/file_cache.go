package dictionary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FileCache stores one JSON file per looked up word.
// Files are named after the SHA-256 of the word, so queries of any length fit the file system's
// name limit; the word itself is kept inside the file.
type FileCache struct {
	rootDir string
}

var _ Store = (*FileCache)(nil)

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

type fileCacheEntry struct {
	Word       string          `json:"word"`
	SourceType string          `json:"source_type"`
	SourceURL  string          `json:"source_url"`
	Response   json.RawMessage `json:"response"`
}

func (cache *FileCache) filePath(word string) string {
	sum := sha256.Sum256([]byte(word))
	return filepath.Join(cache.rootDir, hex.EncodeToString(sum[:])+".json")
}

func (cache *FileCache) Get(_ context.Context, word string) (*DictionaryEntry, error) {
	entry, err := cache.readEntry(cache.filePath(word))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	if entry.Word != word {
		return nil, ErrCacheMiss
	}
	return entry, nil
}

// FindAll returns every cached entry ordered by word.
func (cache *FileCache) FindAll(_ context.Context) ([]DictionaryEntry, error) {
	files, err := os.ReadDir(cache.rootDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir > %w", err)
	}

	var entries []DictionaryEntry
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		entry, err := cache.readEntry(filepath.Join(cache.rootDir, file.Name()))
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	slices.SortFunc(entries, func(a, b DictionaryEntry) int {
		return strings.Compare(a.Word, b.Word)
	})
	return entries, nil
}

func (cache *FileCache) Put(_ context.Context, entry *DictionaryEntry) error {
	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll > %w", err)
	}

	file, err := os.Create(cache.filePath(entry.Word))
	if err != nil {
		return fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fileCacheEntry{
		Word:       entry.Word,
		SourceType: entry.SourceType,
		SourceURL:  entry.SourceURL,
		Response:   entry.Response,
	}); err != nil {
		return fmt.Errorf("json.Encode > %w", err)
	}
	return nil
}

func (cache *FileCache) readEntry(path string) (*DictionaryEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("os.Stat > %w", err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}

	var stored fileCacheEntry
	if err := json.Unmarshal(contents, &stored); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}
	sourceType := stored.SourceType
	if sourceType == "" {
		sourceType = SourceTypeOpenRussian
	}
	return &DictionaryEntry{
		Word:       stored.Word,
		SourceType: sourceType,
		SourceURL:  stored.SourceURL,
		Response:   stored.Response,
		CreatedAt:  info.ModTime(),
		UpdatedAt:  info.ModTime(),
	}, nil
}
