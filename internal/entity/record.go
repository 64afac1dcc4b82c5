package entity

import (
	"strings"

	json "github.com/goccy/go-json"
)

// Record is one catalog entry. Catalog dumps are heterogeneous — the same
// field may hold a string in one record and an array of strings in the next,
// and records carry arbitrary extra fields that must round-trip untouched —
// so a record is a plain map with accessor helpers that coerce values into
// canonical lowercase forms for matching.
type Record map[string]any

// ID returns the record identifier as an integer. Depending on how the
// record was decoded the value may be an int, a float64 or a json.Number;
// all are accepted. Returns false when the field is absent or not numeric.
func (r Record) ID() (int64, bool) {
	v, ok := r["id"]
	if !ok {
		return 0, false
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// Text returns the field as lowercase text for substring matching. A string
// value is returned verbatim (lowercased); an array value is reduced to its
// string elements joined with spaces. Anything else yields the empty string.
func (r Record) Text(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.ToLower(v)
	case []any:
		return strings.Join(lowerStrings(v), " ")
	default:
		return ""
	}
}

// Tokens returns the field as a set of lowercase tokens for exact-match
// membership tests. A scalar string coerces to a single-element set; array
// elements that are not strings are dropped.
func (r Record) Tokens(key string) []string {
	switch v := r[key].(type) {
	case string:
		return []string{strings.ToLower(v)}
	case []any:
		return lowerStrings(v)
	default:
		return nil
	}
}

// MimeTypes collects the lowercased mime_type of every entry in the formats
// array. Entries that are not objects or lack a string mime_type are skipped.
func (r Record) MimeTypes() []string {
	formats, ok := r["formats"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, f := range formats {
		obj, ok := f.(map[string]any)
		if !ok {
			continue
		}
		if mt, ok := obj["mime_type"].(string); ok {
			out = append(out, strings.ToLower(mt))
		}
	}
	return out
}

// Topics returns the combined lowercase subject and bookshelf strings.
func (r Record) Topics() []string {
	return append(r.Tokens("subjects"), r.Tokens("bookshelves")...)
}

// Downloads returns the download count used for ordering. Records with a
// missing or non-numeric value sort as zero.
func (r Record) Downloads() float64 {
	f, _ := asFloat(r["downloads"])
	return f
}

// Clone returns a shallow copy. Mutations merge into a copy so the caller
// never aliases the collection's backing map.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func lowerStrings(vals []any) []string {
	var out []string
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
