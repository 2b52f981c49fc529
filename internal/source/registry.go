// Package source holds the static source catalog, the adapter
// contract, and the error taxonomy adapters degrade on.
package source

import (
	_ "embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/trendlens/trendlens/internal/model"
)

//go:embed sources.yaml
var catalogYAML []byte

// Kind discriminates the adapter family an entry dispatches to.
type Kind string

const (
	KindFixedList Kind = "fixedlist"
	KindFeed      Kind = "feed"
	KindProxy     Kind = "proxy"
)

// Entry is one catalog row. Exactly one of the kind-specific parameter
// fields is meaningful, selected by Kind.
type Entry struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Category model.Category `yaml:"category"`
	Kind     Kind           `yaml:"kind"`

	// Kind == fixedlist: endpoint path under the hotlist base URL.
	Path string `yaml:"path"`
	// Kind == feed: sub-feeds fetched in order.
	Feeds []string `yaml:"feeds"`
	// Kind == proxy: credential slots in priority order.
	Providers []string `yaml:"providers"`
}

// Registry is the immutable source catalog, fixed at process start.
// Enumeration preserves catalog order.
type Registry struct {
	order   []Entry
	entries map[string]Entry
}

// NewRegistry parses the embedded catalog.
func NewRegistry() (*Registry, error) {
	return parseRegistry(catalogYAML)
}

func parseRegistry(data []byte) (*Registry, error) {
	var catalog struct {
		Sources []Entry `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, eris.Wrap(err, "source: parse catalog")
	}
	if len(catalog.Sources) == 0 {
		return nil, eris.New("source: catalog is empty")
	}

	r := &Registry{
		order:   catalog.Sources,
		entries: make(map[string]Entry, len(catalog.Sources)),
	}
	for _, e := range catalog.Sources {
		if e.ID == "" || e.Name == "" {
			return nil, eris.Errorf("source: catalog entry missing id or name: %+v", e)
		}
		if !e.Category.Valid() {
			return nil, eris.Errorf("source: entry %s has invalid category %q", e.ID, e.Category)
		}
		switch e.Kind {
		case KindFixedList:
			if e.Path == "" {
				return nil, eris.Errorf("source: fixedlist entry %s missing path", e.ID)
			}
		case KindFeed:
			if len(e.Feeds) == 0 {
				return nil, eris.Errorf("source: feed entry %s missing feeds", e.ID)
			}
		case KindProxy:
			if len(e.Providers) == 0 {
				return nil, eris.Errorf("source: proxy entry %s missing providers", e.ID)
			}
		default:
			return nil, eris.Errorf("source: entry %s has unknown kind %q", e.ID, e.Kind)
		}
		if _, dup := r.entries[e.ID]; dup {
			return nil, eris.Errorf("source: duplicate catalog id %s", e.ID)
		}
		r.entries[e.ID] = e
	}
	return r, nil
}

// All returns every entry in catalog order.
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.order))
	copy(out, r.order)
	return out
}

// ByCategory returns the entries of one category, in catalog order.
func (r *Registry) ByCategory(cat model.Category) []Entry {
	var out []Entry
	for _, e := range r.order {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Get looks up a single entry. A miss is ErrUnsupportedSource.
func (r *Registry) Get(id string) (Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, eris.Wrapf(ErrUnsupportedSource, "source: %q", id)
	}
	return e, nil
}

// IDs returns all source ids in catalog order.
func (r *Registry) IDs() []string {
	out := make([]string, 0, len(r.order))
	for _, e := range r.order {
		out = append(out, e.ID)
	}
	return out
}
