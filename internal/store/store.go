// Package store holds the persistence adapters for the catalog. The whole
// collection is one snapshot: every backend loads all records in a single
// operation and replaces all records in a single operation. Nothing above
// this package caches a collection between requests.
package store

import (
	"context"

	"bookcatalog/internal/entity"
)

// Store is the record store contract the catalog core depends on.
//
// Load returns the empty collection when nothing has ever been persisted;
// "not found" is never an error. Save replaces the entire collection
// atomically — a failed save must leave the previously persisted state
// intact.
type Store interface {
	Load(ctx context.Context) ([]entity.Record, error)
	Save(ctx context.Context, records []entity.Record) error
}
