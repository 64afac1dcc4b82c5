package catalog

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/testutil"
)

func TestQuerySortsByDownloadsDescending(t *testing.T) {
	svc := NewService(testutil.NewMemStore(testutil.Books()...))

	page, err := svc.Query(context.Background(), Query{})
	require.NoError(t, err)

	// 1 (5000) first, then the 3000 tie in collection order (2 before 3),
	// then 4 (no downloads, sorts as zero).
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(page.Books))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, PerPage, page.PerPage)
}

func TestQuerySortIsStable(t *testing.T) {
	var records []entity.Record
	for i := int64(1); i <= 60; i++ {
		records = append(records, entity.Record{"id": i, "downloads": float64(10)})
	}
	svc := NewService(testutil.NewMemStore(records...))

	page, err := svc.Query(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, 60, page.Total)
	for i, r := range page.Books {
		id, _ := r.ID()
		assert.Equal(t, int64(i+1), id)
	}
}

func TestQueryPagination(t *testing.T) {
	var records []entity.Record
	for i := int64(1); i <= 60; i++ {
		// descending downloads so sorted order equals id order
		records = append(records, entity.Record{"id": i, "downloads": float64(1000 - i)})
	}
	svc := NewService(testutil.NewMemStore(records...))
	ctx := context.Background()

	t.Run("first page holds 25 records", func(t *testing.T) {
		page, err := svc.Query(ctx, Query{Page: 1})
		require.NoError(t, err)
		assert.Len(t, page.Books, 25)
		assert.Equal(t, int64(1), ids(page.Books)[0])
		assert.Equal(t, 60, page.Total)
	})

	t.Run("third page holds the remainder", func(t *testing.T) {
		page, err := svc.Query(ctx, Query{Page: 3})
		require.NoError(t, err)
		assert.Len(t, page.Books, 10)
		assert.Equal(t, int64(51), ids(page.Books)[0])
	})

	t.Run("page past the end is empty with correct total", func(t *testing.T) {
		page, err := svc.Query(ctx, Query{Page: 9})
		require.NoError(t, err)
		assert.Empty(t, page.Books)
		assert.NotNil(t, page.Books, "books must serialize as [], not null")
		assert.Equal(t, 60, page.Total)
		assert.Equal(t, 9, page.Page)
	})

	t.Run("huge page number yields an empty slice without overflowing", func(t *testing.T) {
		huge := math.MaxInt/PerPage + 1 // (huge-1)*PerPage wraps negative if multiplied
		page, err := svc.Query(ctx, Query{Page: huge})
		require.NoError(t, err)
		assert.Empty(t, page.Books)
		assert.NotNil(t, page.Books)
		assert.Equal(t, 60, page.Total)
		assert.Equal(t, huge, page.Page)
	})

	t.Run("zero page clamps to 1", func(t *testing.T) {
		page, err := svc.Query(ctx, Query{Page: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Books, 25)
	})
}

func TestQueryStoreError(t *testing.T) {
	st := testutil.NewMemStore()
	st.LoadErr = errors.New("disk on fire")
	svc := NewService(st)

	_, err := svc.Query(context.Background(), Query{})
	assert.ErrorContains(t, err, "disk on fire")
}

func TestGet(t *testing.T) {
	svc := NewService(testutil.NewMemStore(testutil.Books()...))
	ctx := context.Background()

	rec, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "moby dick or, the whale", rec.Text("title"))

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAssignsNextID(t *testing.T) {
	ctx := context.Background()

	t.Run("max existing id plus one", func(t *testing.T) {
		st := testutil.NewMemStore(
			entity.Record{"id": int64(1)},
			entity.Record{"id": int64(3)},
			entity.Record{"id": int64(7)},
		)
		svc := NewService(st)

		rec, err := svc.Create(ctx, map[string]any{"title": "New Book"})
		require.NoError(t, err)

		id, ok := rec.ID()
		require.True(t, ok)
		assert.Equal(t, int64(8), id)
		assert.Equal(t, "New Book", rec["title"])
		assert.Len(t, st.Records, 4)
		assert.Equal(t, 1, st.Saves)
	})

	t.Run("empty collection starts at 1", func(t *testing.T) {
		svc := NewService(testutil.NewMemStore())
		rec, err := svc.Create(ctx, nil)
		require.NoError(t, err)
		id, _ := rec.ID()
		assert.Equal(t, int64(1), id)
	})

	t.Run("save failure propagates", func(t *testing.T) {
		st := testutil.NewMemStore()
		st.SaveErr = errors.New("no space left")
		svc := NewService(st)
		_, err := svc.Create(ctx, map[string]any{"title": "x"})
		assert.ErrorContains(t, err, "no space left")
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("merges caller fields and keeps the rest", func(t *testing.T) {
		st := testutil.NewMemStore(testutil.Books()...)
		svc := NewService(st)

		rec, err := svc.Update(ctx, 3, map[string]any{"title": "New"})
		require.NoError(t, err)
		assert.Equal(t, "New", rec["title"])
		assert.Equal(t, "Alexandre Dumas", rec["author"])
		assert.Equal(t, float64(3000), rec.Downloads())

		stored, _ := st.Load(ctx)
		assert.Equal(t, "New", stored[2]["title"])
		assert.Len(t, stored, 4)
	})

	t.Run("payload cannot change the id", func(t *testing.T) {
		st := testutil.NewMemStore(testutil.Books()...)
		svc := NewService(st)

		rec, err := svc.Update(ctx, 3, map[string]any{"id": int64(99), "title": "New"})
		require.NoError(t, err)
		id, _ := rec.ID()
		assert.Equal(t, int64(3), id)
	})

	t.Run("unknown id is NotFound and persists nothing", func(t *testing.T) {
		st := testutil.NewMemStore(testutil.Books()...)
		svc := NewService(st)

		_, err := svc.Update(ctx, 999, map[string]any{"title": "New"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 0, st.Saves)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the record", func(t *testing.T) {
		st := testutil.NewMemStore(testutil.Books()...)
		svc := NewService(st)

		require.NoError(t, svc.Delete(ctx, 2))
		assert.Equal(t, []int64{1, 3, 4}, ids(st.Records))
	})

	t.Run("removes every record carrying the id", func(t *testing.T) {
		st := testutil.NewMemStore(
			entity.Record{"id": int64(5), "title": "dup A"},
			entity.Record{"id": int64(6)},
			entity.Record{"id": int64(5), "title": "dup B"},
		)
		svc := NewService(st)

		require.NoError(t, svc.Delete(ctx, 5))
		assert.Equal(t, []int64{6}, ids(st.Records))
	})

	t.Run("absent id succeeds and changes nothing", func(t *testing.T) {
		st := testutil.NewMemStore(testutil.Books()...)
		svc := NewService(st)

		require.NoError(t, svc.Delete(ctx, 999))
		assert.Equal(t, []int64{1, 2, 3, 4}, ids(st.Records))
	})
}
