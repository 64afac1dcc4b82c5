package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/store"
)

// Service exposes the catalog operations over an injected store. It holds no
// collection state of its own: every operation loads a fresh snapshot, and
// mutations write the whole snapshot back.
//
// The mutex serializes the load-mutate-save cycle of mutations so two
// concurrent writes cannot lose each other's changes. Queries take no lock;
// they only load and compute.
type Service struct {
	store store.Store
	mu    sync.Mutex
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Query filters, orders and paginates the collection.
func (s *Service) Query(ctx context.Context, q Query) (Page, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("load collection: %w", err)
	}

	matched := q.filter(records)

	// Stable sort: equal download counts keep their collection order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Downloads() > matched[j].Downloads()
	})

	page := q.Page
	if page < 1 {
		page = 1
	}
	// Compare against the last page before multiplying: a huge page number
	// must yield an empty slice, not overflow the start offset.
	lastPage := (len(matched) + PerPage - 1) / PerPage
	start := len(matched)
	if page <= lastPage {
		start = (page - 1) * PerPage
	}
	end := start + PerPage
	if end > len(matched) {
		end = len(matched)
	}

	books := make([]entity.Record, end-start)
	copy(books, matched[start:end])

	return Page{
		Total:   len(matched),
		Page:    page,
		PerPage: PerPage,
		Books:   books,
	}, nil
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (entity.Record, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	for _, r := range records {
		if rid, ok := r.ID(); ok && rid == id {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new record with the next free id (max existing id + 1,
// or 1 for an empty collection) and persists the collection.
func (s *Service) Create(ctx context.Context, fields map[string]any) (entity.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	var maxID int64
	for _, r := range records {
		if id, ok := r.ID(); ok && id > maxID {
			maxID = id
		}
	}

	rec := make(entity.Record, len(fields)+1)
	for k, v := range fields {
		rec[k] = v
	}
	rec["id"] = maxID + 1

	records = append(records, rec)
	if err := s.store.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return rec, nil
}

// Update shallow-merges the caller's fields over the record with the given
// id; caller fields win, everything else is preserved. The id itself cannot
// be changed through the payload. Returns ErrNotFound when the id is absent.
func (s *Service) Update(ctx context.Context, id int64, fields map[string]any) (entity.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	idx := -1
	for i, r := range records {
		if rid, ok := r.ID(); ok && rid == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	merged := records[idx].Clone()
	for k, v := range fields {
		if k == "id" {
			continue
		}
		merged[k] = v
	}
	records[idx] = merged

	if err := s.store.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}
	return merged, nil
}

// Delete removes every record with the given id and persists the collection.
// Ids are expected to be unique; removing all matches costs nothing when
// they are and repairs the collection when they are not. Deleting an absent
// id is a successful no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	kept := make([]entity.Record, 0, len(records))
	for _, r := range records {
		if rid, ok := r.ID(); ok && rid == id {
			continue
		}
		kept = append(kept, r)
	}

	if err := s.store.Save(ctx, kept); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}
