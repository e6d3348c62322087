package dictionary

import (
	"encoding/json"
	"time"
)

// SourceTypeOpenRussian marks entries fetched from the OpenRussian suggestions API.
const SourceTypeOpenRussian = "openrussian"

// DictionaryEntry is a cached API response for one looked up word.
type DictionaryEntry struct {
	Word       string          `db:"word"`
	SourceType string          `db:"source_type"`
	SourceURL  string          `db:"source_url"`
	Response   json.RawMessage `db:"response"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// MarshalYAML writes the response as nested YAML when it is valid JSON, as a string otherwise.
func (d DictionaryEntry) MarshalYAML() (interface{}, error) {
	var response any = string(d.Response)
	var decoded any
	if err := json.Unmarshal(d.Response, &decoded); err == nil {
		response = decoded
	}

	return struct {
		Word       string    `yaml:"word"`
		SourceType string    `yaml:"source_type"`
		SourceURL  string    `yaml:"source_url,omitempty"`
		UpdatedAt  time.Time `yaml:"updated_at"`
		Response   any       `yaml:"response"`
	}{
		Word:       d.Word,
		SourceType: d.SourceType,
		SourceURL:  d.SourceURL,
		UpdatedAt:  d.UpdatedAt,
		Response:   response,
	}, nil
}
