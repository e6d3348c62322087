package openrussian

// Source is the provenance label attached to every record.
const Source = "openrussian.org suggestions"

// Record is the lookup result for a single query.
// Every field is always serialized; missing values are written as null.
type Record struct {
	Query        string   `json:"query" yaml:"query"`
	Found        bool     `json:"found" yaml:"found"`
	Word         *string  `json:"word" yaml:"word"`
	WordStressed *string  `json:"word_stressed" yaml:"word_stressed"`
	BaseForm     *string  `json:"base_form" yaml:"base_form"`
	POS          *string  `json:"pos" yaml:"pos"`
	Translation  []string `json:"translation" yaml:"translation"`
	ExampleRU    *string  `json:"example_ru" yaml:"example_ru"`
	ExampleEN    *string  `json:"example_en" yaml:"example_en"`
	Source       string   `json:"source" yaml:"source"`
}

func notFound(query string, term *string) Record {
	return Record{
		Query:  query,
		Found:  false,
		Word:   term,
		Source: Source,
	}
}

// BuildRecord maps a decoded suggestions payload to a Record for query.
// It never fails: anything missing or of the wrong shape becomes an absent value.
func BuildRecord(query string, raw any) Record {
	result, ok := field(raw, "result")
	if !ok {
		return notFound(query, nil)
	}
	if _, ok := asRecord(result); !ok {
		return notFound(query, nil)
	}

	term := optional(stringAt(result, "term"))
	words, _ := field(result, "words")
	selection := SelectEntry(words, query)
	if !selection.Found() {
		return notFound(query, term)
	}

	word, _ := field(selection.Entry, "word")
	baseForm := optional(stringAt(word, "ru"))
	tls, _ := field(word, "tls")

	record := Record{
		Query:        query,
		Found:        true,
		Word:         term,
		WordStressed: firstPresent(selection.Form, baseForm, term),
		BaseForm:     baseForm,
		POS:          optional(stringAt(word, "type")),
		Translation:  flattenTranslations(tls),
		Source:       Source,
	}

	sentences, _ := field(result, "sentences")
	if example, ok := firstRecord(sentences); ok {
		record.ExampleRU = optional(stringAt(example, "ru"))
		record.ExampleEN = optional(stringAt(example, "tl"))
	}
	return record
}

// flattenTranslations flattens translation groups one level.
// A group is either a list of strings or a bare string; other shapes are dropped.
func flattenTranslations(tls any) []string {
	translations := []string{}
	groups, ok := asList(tls)
	if !ok {
		return translations
	}
	for _, group := range groups {
		switch g := group.(type) {
		case []any:
			for _, item := range g {
				if s, ok := asString(item); ok {
					translations = append(translations, s)
				}
			}
		case string:
			translations = append(translations, g)
		}
	}
	return translations
}

func firstPresent(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
