// Package songbook holds the song index and book abbreviation table used to resolve
// song identifiers during extraction
package songbook

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Index is an immutable set of known song page identifiers (e.g. "49t", "128")
type Index struct {
	ids map[string]struct{}
}

// NewIndex lower-cases and trims ids; blanks are skipped
func NewIndex(ids ...string) *Index {
	ix := &Index{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id != "" {
			ix.ids[id] = struct{}{}
		}
	}
	return ix
}

// Contains reports whether id is a known page; a nil index knows nothing
func (ix *Index) Contains(id string) bool {
	if ix == nil {
		return false
	}
	_, ok := ix.ids[id]
	return ok
}

// Len is the number of known pages
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.ids)
}

// Source supplies page identifiers, typically from the songs table
type Source interface {
	SongIDs(ctx context.Context) ([]string, error)
}

// Loader loads the index once; a failed load is retried on the next call
type Loader struct {
	src Source

	mu sync.Mutex
	ix *Index
}

// NewLoader wraps src
func NewLoader(src Source) *Loader { return &Loader{src: src} }

// Index returns the cached index, loading it on first use
func (l *Loader) Index(ctx context.Context) (*Index, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ix != nil {
		return l.ix, nil
	}
	ids, err := l.src.SongIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("songbook: load index: %w", err)
	}
	l.ix = NewIndex(ids...)
	return l.ix, nil
}

// Books maps full book titles to abbreviations
type Books map[string]string

// DefaultBooks returns the books that commonly appear alongside the main tunebook
func DefaultBooks() Books {
	return Books{
		"Christmas Harp":    "ACH",
		"Christian Harmony": "CH",
		"Cooper Book":       "CB",
	}
}

// Resolve returns the abbreviation for title, or title unchanged
func (b Books) Resolve(title string) string {
	if v, ok := b[title]; ok {
		return v
	}
	return title
}

// Merge returns a new table with other layered over b
func (b Books) Merge(other Books) Books {
	out := maps.Clone(b)
	if out == nil {
		out = Books{}
	}
	maps.Copy(out, other)
	return out
}

// ParseBooks reads a YAML mapping of title: abbreviation
func ParseBooks(data []byte) (Books, error) {
	var b Books
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("songbook: parse books: %w", err)
	}
	for title, abbr := range b {
		if strings.TrimSpace(title) == "" || strings.TrimSpace(abbr) == "" {
			return nil, fmt.Errorf("songbook: blank entry %q: %q", title, abbr)
		}
	}
	return b, nil
}
