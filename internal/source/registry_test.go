package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/trendlens/internal/model"
)

func TestNewRegistry_EmbeddedCatalog(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)

	all := r.All()
	assert.Len(t, all, 12)
	assert.Equal(t, "zhihu", all[0].ID, "catalog order is preserved")
	assert.Equal(t, "gtrends", all[len(all)-1].ID)

	assert.Len(t, r.ByCategory(model.CategoryDomestic), 9)
	assert.Len(t, r.ByCategory(model.CategoryGlobal), 3)
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)

	entry, err := r.Get("weibo")
	require.NoError(t, err)
	assert.Equal(t, KindFixedList, entry.Kind)
	assert.Equal(t, "weibo", entry.Path)

	entry, err = r.Get("reddit")
	require.NoError(t, err)
	assert.Equal(t, KindFeed, entry.Kind)
	assert.Equal(t, []string{"popular", "news", "worldnews"}, entry.Feeds)

	entry, err = r.Get("twitter")
	require.NoError(t, err)
	assert.Equal(t, KindProxy, entry.Kind)
	assert.Equal(t, []string{"twitterapiio", "zyla", "rapidapi"}, entry.Providers)
}

func TestRegistry_GetUnknownSource(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)

	_, err = r.Get("myspace")
	assert.ErrorIs(t, err, ErrUnsupportedSource)
}

func TestRegistry_IDs(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry()
	require.NoError(t, err)

	ids := r.IDs()
	require.Len(t, ids, 12)
	assert.Equal(t, "zhihu", ids[0])
	assert.Equal(t, "reddit", ids[9])
}

func TestParseRegistry_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"empty catalog", "sources: []"},
		{"missing id", "sources:\n  - name: X\n    category: domestic\n    kind: fixedlist\n    path: x"},
		{"bad category", "sources:\n  - id: x\n    name: X\n    category: galactic\n    kind: fixedlist\n    path: x"},
		{"unknown kind", "sources:\n  - id: x\n    name: X\n    category: domestic\n    kind: scrape\n    path: x"},
		{"fixedlist without path", "sources:\n  - id: x\n    name: X\n    category: domestic\n    kind: fixedlist"},
		{"feed without feeds", "sources:\n  - id: x\n    name: X\n    category: global\n    kind: feed"},
		{"proxy without providers", "sources:\n  - id: x\n    name: X\n    category: global\n    kind: proxy"},
		{"duplicate id", "sources:\n  - id: x\n    name: X\n    category: domestic\n    kind: fixedlist\n    path: a\n  - id: x\n    name: Y\n    category: domestic\n    kind: fixedlist\n    path: b"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseRegistry([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
