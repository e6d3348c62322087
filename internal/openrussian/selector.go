package openrussian

import "github.com/at-ishikawa/rulookup/internal/normalize"

// Selection is the outcome of matching a query against the suggested words.
// Entry is nil when nothing could be chosen. Form is the surface form that
// matched the query exactly, nil for the first-candidate fallback.
type Selection struct {
	Entry map[string]any
	Form  *string
}

// Found reports whether an entry was chosen.
func (s Selection) Found() bool {
	return s.Entry != nil
}

// matchStrategy looks for an entry among candidates for an already normalized query key.
type matchStrategy func(candidates []any, key string) (Selection, bool)

// selectionStrategies are tried in order; the first one that succeeds wins.
var selectionStrategies = []matchStrategy{
	matchInflectedForm,
	matchCanonicalForm,
	firstCandidate,
}

// SelectEntry picks the suggested word that best matches query.
//
// An inflected form equal to the query takes priority over any canonical form,
// across all candidates. Without any exact match the first candidate is
// returned as the closest suggestion, unless it is an empty record. When several candidates match, the first
// one in the source order is returned; homonyms are not disambiguated.
func SelectEntry(candidates any, query string) Selection {
	words, ok := asList(candidates)
	if !ok || len(words) == 0 {
		return Selection{}
	}

	key := normalize.Key(query)
	for _, strategy := range selectionStrategies {
		if selection, ok := strategy(words, key); ok {
			return selection
		}
	}
	return Selection{}
}

func matchInflectedForm(candidates []any, key string) (Selection, bool) {
	for _, candidate := range candidates {
		entry, ok := asRecord(candidate)
		if !ok {
			continue
		}
		forms, ok := listAt(entry, "forms")
		if !ok {
			continue
		}
		for _, form := range forms {
			ru, ok := stringAt(form, "ru")
			if !ok {
				continue
			}
			if normalize.Key(ru) == key {
				return Selection{Entry: entry, Form: &ru}, true
			}
		}
	}
	return Selection{}, false
}

func matchCanonicalForm(candidates []any, key string) (Selection, bool) {
	for _, candidate := range candidates {
		entry, ok := asRecord(candidate)
		if !ok {
			continue
		}
		ru, ok := stringAt(entry, "word", "ru")
		if !ok {
			continue
		}
		if normalize.Key(ru) == key {
			return Selection{Entry: entry, Form: &ru}, true
		}
	}
	return Selection{}, false
}

func firstCandidate(candidates []any, _ string) (Selection, bool) {
	if len(candidates) == 0 {
		return Selection{}, false
	}
	entry, ok := asRecord(candidates[0])
	if !ok || len(entry) == 0 {
		return Selection{}, false
	}
	return Selection{Entry: entry}, true
}
