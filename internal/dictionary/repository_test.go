package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entryColumns = []string{
	"word", "source_type", "source_url", "response", "created_at", "updated_at",
}

func newMockRepository(t *testing.T) (*DBDictionaryRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewDBDictionaryRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBDictionaryRepository_FindAll(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(entryColumns).
		AddRow("кот", "openrussian", "https://api.openrussian.org/suggestions?q=кот", []byte(`{"result":{}}`), now, now).
		AddRow("мама", "openrussian", "https://api.openrussian.org/suggestions?q=мама", []byte(`{"result":{"term":"мама"}}`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta(entrySelect + " ORDER BY word")).WillReturnRows(rows)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "кот", got[0].Word)
	assert.Equal(t, "openrussian", got[0].SourceType)
	assert.Equal(t, json.RawMessage(`{"result":{}}`), got[0].Response)
	assert.Equal(t, "мама", got[1].Word)
	assert.Equal(t, now, got[1].UpdatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBDictionaryRepository_Get(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	getQuery := regexp.QuoteMeta(entrySelect + " WHERE word = ?")

	tests := []struct {
		name      string
		word      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *DictionaryEntry
		wantMiss  bool
		wantErr   bool
	}{
		{
			name: "found",
			word: "мама",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(entryColumns).
					AddRow("мама", "openrussian", "https://api.openrussian.org/suggestions?q=мама", []byte(`{"result":{}}`), now, now)
				mock.ExpectQuery(getQuery).WithArgs("мама").WillReturnRows(rows)
			},
			want: &DictionaryEntry{
				Word:       "мама",
				SourceType: "openrussian",
				SourceURL:  "https://api.openrussian.org/suggestions?q=мама",
				Response:   json.RawMessage(`{"result":{}}`),
				CreatedAt:  now,
				UpdatedAt:  now,
			},
		},
		{
			name: "not found is a miss",
			word: "ъъъ",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getQuery).WithArgs("ъъъ").WillReturnRows(sqlmock.NewRows(entryColumns))
			},
			wantMiss: true,
		},
		{
			name: "query error",
			word: "кот",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(getQuery).WithArgs("кот").WillReturnError(errors.New("connection lost"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.Get(context.Background(), tt.word)
			switch {
			case tt.wantMiss:
				assert.ErrorIs(t, err, ErrCacheMiss)
				assert.Nil(t, got)
			case tt.wantErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrCacheMiss)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBDictionaryRepository_Put(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		wantErr bool
	}{
		{name: "upserts the entry"},
		{name: "exec error", execErr: errors.New("read only"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			exec := mock.ExpectExec("(?s)INSERT INTO dictionary_entries .* ON DUPLICATE KEY UPDATE").
				WithArgs("кот", "openrussian", "https://api.openrussian.org/suggestions?q=кот", json.RawMessage(`{}`))
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err := repo.Put(context.Background(), &DictionaryEntry{
				Word:       "кот",
				SourceType: "openrussian",
				SourceURL:  "https://api.openrussian.org/suggestions?q=кот",
				Response:   json.RawMessage(`{}`),
			})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
