package catalog

import (
	"strings"

	"bookcatalog/internal/entity"
)

type predicate func(entity.Record) bool

// predicates returns one predicate per active filter kind. Kinds combine
// with AND (the caller applies all of them); the terms inside a kind combine
// with OR. A kind whose parameter was absent contributes no predicate.
func (q Query) predicates() []predicate {
	var preds []predicate

	if len(q.IDs) > 0 {
		wanted := make(map[int64]bool, len(q.IDs))
		for _, id := range q.IDs {
			wanted[id] = true
		}
		preds = append(preds, func(r entity.Record) bool {
			id, ok := r.ID()
			return ok && wanted[id]
		})
	}

	if len(q.Languages) > 0 {
		terms := q.Languages
		preds = append(preds, func(r entity.Record) bool {
			return anyEqual(r.Tokens("languages"), terms)
		})
	}

	if len(q.MimeTypes) > 0 {
		terms := q.MimeTypes
		preds = append(preds, func(r entity.Record) bool {
			return anyEqual(r.MimeTypes(), terms)
		})
	}

	if len(q.Topics) > 0 {
		terms := q.Topics
		preds = append(preds, func(r entity.Record) bool {
			return anyValueContains(r.Topics(), terms)
		})
	}

	// Title and author form a single kind: a record passes when its title
	// contains any title term OR its author contains any author term. An
	// empty term set on one side simply drops out of the OR; the kind as a
	// whole only runs when at least one side has terms.
	if len(q.Titles) > 0 || len(q.Authors) > 0 {
		titles, authors := q.Titles, q.Authors
		preds = append(preds, func(r entity.Record) bool {
			return textContains(r.Text("title"), titles) ||
				textContains(r.Text("author"), authors)
		})
	}

	return preds
}

// filter applies every active predicate and keeps the records passing all of
// them, preserving collection order.
func (q Query) filter(records []entity.Record) []entity.Record {
	preds := q.predicates()
	if len(preds) == 0 {
		return records
	}
	matched := make([]entity.Record, 0, len(records))
next:
	for _, r := range records {
		for _, pred := range preds {
			if !pred(r) {
				continue next
			}
		}
		matched = append(matched, r)
	}
	return matched
}

func anyEqual(values, terms []string) bool {
	for _, v := range values {
		for _, t := range terms {
			if v == t {
				return true
			}
		}
	}
	return false
}

// anyValueContains reports whether any value has any term as a substring.
func anyValueContains(values, terms []string) bool {
	for _, v := range values {
		for _, t := range terms {
			if strings.Contains(v, t) {
				return true
			}
		}
	}
	return false
}

// textContains reports whether the text has any term as a substring.
func textContains(text string, terms []string) bool {
	if text == "" {
		return false
	}
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
