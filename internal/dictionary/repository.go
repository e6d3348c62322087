package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrCacheMiss is returned by a Store that has no entry for a word.
var ErrCacheMiss = errors.New("dictionary: cache miss")

//go:generate mockgen -source=repository.go -destination=../mocks/dictionary/mock_store.go -package=mock_dictionary

// Store keeps raw API responses keyed by the looked up word.
type Store interface {
	FindAll(ctx context.Context) ([]DictionaryEntry, error)
	Get(ctx context.Context, word string) (*DictionaryEntry, error)
	Put(ctx context.Context, entry *DictionaryEntry) error
}

// DBDictionaryRepository implements Store using MySQL.
type DBDictionaryRepository struct {
	db *sqlx.DB
}

var _ Store = (*DBDictionaryRepository)(nil)

// NewDBDictionaryRepository creates a new DBDictionaryRepository.
func NewDBDictionaryRepository(db *sqlx.DB) *DBDictionaryRepository {
	return &DBDictionaryRepository{db: db}
}

const entrySelect = "SELECT word, source_type, source_url, response, created_at, updated_at FROM dictionary_entries"

// FindAll returns every cached entry ordered by word.
func (r *DBDictionaryRepository) FindAll(ctx context.Context) ([]DictionaryEntry, error) {
	var entries []DictionaryEntry
	if err := r.db.SelectContext(ctx, &entries, entrySelect+" ORDER BY word"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(dictionary_entries) > %w", err)
	}
	return entries, nil
}

// Get returns ErrCacheMiss when no row exists for word.
func (r *DBDictionaryRepository) Get(ctx context.Context, word string) (*DictionaryEntry, error) {
	var entry DictionaryEntry
	err := r.db.GetContext(ctx, &entry, entrySelect+" WHERE word = ?", word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(dictionary_entry) > %w", err)
	}
	return &entry, nil
}

// Put replaces the cached response of entry.Word.
func (r *DBDictionaryRepository) Put(ctx context.Context, entry *DictionaryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO dictionary_entries (word, source_type, source_url, response)
		VALUES (?, ?, ?, ?) AS new
		ON DUPLICATE KEY UPDATE source_type = new.source_type, source_url = new.source_url, response = new.response`,
		entry.Word, entry.SourceType, entry.SourceURL, entry.Response)
	if err != nil {
		return fmt.Errorf("db.ExecContext(put dictionary_entry) > %w", err)
	}
	return nil
}
