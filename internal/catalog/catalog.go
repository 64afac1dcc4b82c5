// Package catalog implements the query and mutation core of the book
// catalog: parsing request parameters into filter terms, running the filter
// pipeline over the loaded collection, ordering and paginating the result,
// and applying create/update/delete as whole-collection read-modify-write
// cycles against the store.
package catalog

import (
	"errors"

	"bookcatalog/internal/entity"
)

// ErrNotFound is returned when the requested record id is not in the
// collection.
var ErrNotFound = errors.New("book not found")

// PerPage is the fixed page size of every query result.
const PerPage = 25

// Page is one page of query results, shaped exactly as the transport layer
// serializes it.
type Page struct {
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Books   []entity.Record `json:"books"`
}
