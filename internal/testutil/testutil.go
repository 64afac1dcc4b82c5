// Package testutil holds the shared catalog fixtures and the in-memory
// store used by tests.
package testutil

import (
	"context"
	"sync"

	"bookcatalog/internal/entity"
)

// MemStore is an in-memory record store for tests. Load and Save copy the
// slice so tests can inspect state without aliasing the service's view.
type MemStore struct {
	mu      sync.Mutex
	Records []entity.Record
	LoadErr error
	SaveErr error
	Saves   int
}

func NewMemStore(records ...entity.Record) *MemStore {
	return &MemStore{Records: records}
}

func (m *MemStore) Load(ctx context.Context) ([]entity.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]entity.Record, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

func (m *MemStore) Save(ctx context.Context, records []entity.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Records = make([]entity.Record, len(records))
	copy(m.Records, records)
	m.Saves++
	return nil
}

// Books returns a small catalog covering the field shapes the normalizer
// must tolerate: scalar and array titles/authors/languages, nested formats,
// non-string topic entries and a record without downloads.
func Books() []entity.Record {
	return []entity.Record{
		{
			"id":        int64(1),
			"title":     "Pride and Prejudice",
			"author":    "Jane Austen",
			"languages": []any{"en"},
			"formats": []any{
				map[string]any{"mime_type": "text/html"},
				map[string]any{"mime_type": "application/epub+zip"},
			},
			"subjects":    []any{"England -- Fiction", "Love stories"},
			"bookshelves": []any{"Best Books Ever"},
			"downloads":   float64(5000),
		},
		{
			"id":        int64(2),
			"title":     []any{"Moby Dick", "or, The Whale"},
			"author":    []any{"Herman Melville"},
			"languages": "en",
			"formats": []any{
				map[string]any{"mime_type": "text/plain"},
			},
			"subjects":  []any{"Whaling -- Fiction"},
			"downloads": float64(3000),
		},
		{
			"id":        int64(3),
			"title":     "Le Comte de Monte-Cristo",
			"author":    "Alexandre Dumas",
			"languages": []any{"fr"},
			"subjects":  []any{float64(42), "Adventure stories"},
			"downloads": float64(3000),
		},
		{
			"id":          int64(4),
			"title":       "Frankenstein",
			"author":      "Mary Shelley",
			"languages":   []any{"en", "de"},
			"bookshelves": []any{"Horror", "Movie Books"},
			// no downloads: sorts last
		},
	}
}
