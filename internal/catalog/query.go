package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// Query carries the parsed filter terms of one request. A nil/empty term
// slice means that filter kind was not requested and is skipped entirely —
// it never degrades to match-all or match-none.
type Query struct {
	IDs       []int64
	Languages []string
	MimeTypes []string
	Topics    []string
	Titles    []string
	Authors   []string
	Page      int
}

// ParseQuery maps the recognized request parameters (id, languages,
// mime_type, topic, q, title, author, page) onto a Query. Parsing is
// best-effort throughout: malformed id tokens drop out of the set and a
// malformed or missing page coerces to 1.
func ParseQuery(params url.Values) Query {
	q := Query{
		IDs:       parseIDs(params.Get("id")),
		Languages: splitTerms(params.Get("languages")),
		MimeTypes: splitTerms(params.Get("mime_type")),
		Topics:    splitTerms(params.Get("topic")),
		Page:      parsePage(params.Get("page")),
	}
	// q searches titles and authors at once; explicit title/author
	// parameters only apply when no general query is present.
	if general := splitTerms(params.Get("q")); len(general) > 0 {
		q.Titles = general
		q.Authors = general
	} else {
		q.Titles = splitTerms(params.Get("title"))
		q.Authors = splitTerms(params.Get("author"))
	}
	return q
}

// splitTerms turns a comma-separated parameter into trimmed lowercase terms.
// Blank tokens (trailing commas, double commas) are dropped.
func splitTerms(raw string) []string {
	if raw == "" {
		return nil
	}
	var terms []string
	for _, part := range strings.Split(raw, ",") {
		term := strings.ToLower(strings.TrimSpace(part))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func parseIDs(raw string) []int64 {
	var ids []int64
	for _, term := range splitTerms(raw) {
		id, err := strconv.ParseInt(term, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
