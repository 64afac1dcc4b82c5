package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueryTerms(t *testing.T) {
	t.Run("terms are split, trimmed and lowercased", func(t *testing.T) {
		q := ParseQuery(url.Values{"languages": {" EN , fr,DE"}})
		assert.Equal(t, []string{"en", "fr", "de"}, q.Languages)
	})

	t.Run("blank tokens are dropped", func(t *testing.T) {
		q := ParseQuery(url.Values{"topic": {"horror,, ,whaling,"}})
		assert.Equal(t, []string{"horror", "whaling"}, q.Topics)
	})

	t.Run("absent parameters stay nil", func(t *testing.T) {
		q := ParseQuery(url.Values{})
		assert.Nil(t, q.Languages)
		assert.Nil(t, q.MimeTypes)
		assert.Nil(t, q.Topics)
		assert.Nil(t, q.Titles)
		assert.Nil(t, q.Authors)
		assert.Nil(t, q.IDs)
	})
}

func TestParseQueryIDs(t *testing.T) {
	t.Run("integers parse into the set", func(t *testing.T) {
		q := ParseQuery(url.Values{"id": {"1,42, 7"}})
		assert.Equal(t, []int64{1, 42, 7}, q.IDs)
	})

	t.Run("malformed tokens drop out", func(t *testing.T) {
		q := ParseQuery(url.Values{"id": {"1,abc,2.5,3"}})
		assert.Equal(t, []int64{1, 3}, q.IDs)
	})
}

func TestParseQueryPage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"2", 2},
		{" 4 ", 4},
	}
	for _, tt := range tests {
		q := ParseQuery(url.Values{"page": {tt.raw}})
		assert.Equal(t, tt.want, q.Page, "page=%q", tt.raw)
	}
}

func TestParseQueryGeneralSearch(t *testing.T) {
	t.Run("q fills both title and author sets", func(t *testing.T) {
		q := ParseQuery(url.Values{"q": {"whale,sea"}})
		assert.Equal(t, []string{"whale", "sea"}, q.Titles)
		assert.Equal(t, []string{"whale", "sea"}, q.Authors)
	})

	t.Run("q wins over explicit title and author", func(t *testing.T) {
		q := ParseQuery(url.Values{
			"q":      {"whale"},
			"title":  {"pride"},
			"author": {"austen"},
		})
		assert.Equal(t, []string{"whale"}, q.Titles)
		assert.Equal(t, []string{"whale"}, q.Authors)
	})

	t.Run("title and author parse independently without q", func(t *testing.T) {
		q := ParseQuery(url.Values{"title": {"pride"}, "author": {"melville"}})
		assert.Equal(t, []string{"pride"}, q.Titles)
		assert.Equal(t, []string{"melville"}, q.Authors)
	})

	t.Run("blank q falls back to title and author", func(t *testing.T) {
		q := ParseQuery(url.Values{"q": {" , "}, "title": {"pride"}})
		assert.Equal(t, []string{"pride"}, q.Titles)
		assert.Nil(t, q.Authors)
	})
}
