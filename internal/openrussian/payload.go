package openrussian

// The suggestions endpoint returns loosely structured JSON whose fields may be
// missing, null or of an unexpected type at any level. Payloads are decoded into
// plain `any` values and read only through the accessors below; every accessor
// reports absence instead of failing.

func asRecord(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// field returns the value stored under key when v is a record.
func field(v any, key string) (any, bool) {
	m, ok := asRecord(v)
	if !ok {
		return nil, false
	}
	value, ok := m[key]
	return value, ok
}

// lookupPath walks nested records, e.g. lookupPath(entry, "word", "ru").
func lookupPath(v any, keys ...string) (any, bool) {
	current := v
	for _, key := range keys {
		next, ok := field(current, key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func stringAt(v any, keys ...string) (string, bool) {
	value, ok := lookupPath(v, keys...)
	if !ok {
		return "", false
	}
	return asString(value)
}

func listAt(v any, keys ...string) ([]any, bool) {
	value, ok := lookupPath(v, keys...)
	if !ok {
		return nil, false
	}
	return asList(value)
}

func firstRecord(v any) (map[string]any, bool) {
	l, ok := asList(v)
	if !ok || len(l) == 0 {
		return nil, false
	}
	return asRecord(l[0])
}

// optional converts an accessor result into a nullable value.
func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
