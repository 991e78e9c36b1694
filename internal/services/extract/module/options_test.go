package module

import (
	"testing"

	"minutes/internal/platform/config"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_EXTRACT_WORKERS", "8")
	t.Setenv("CORE_EXTRACT_BREAKS", "true")
	t.Setenv("CORE_EXTRACT_BOOKS_FILE", "/etc/books.yaml")

	o := FromConfig(config.New())
	if o.Workers != 8 || o.PageSize != 200 || !o.Breaks || o.StrictSongs || o.BooksFile != "/etc/books.yaml" {
		t.Fatalf("opts = %+v", o)
	}
}

func TestMerge(t *testing.T) {
	base := Options{Workers: 4, PageSize: 200, Breaks: true}
	got := base.merge(Options{Workers: 2, StrictSongs: true, GrammarFile: "g.yaml"})
	want := Options{Workers: 2, PageSize: 200, Breaks: true, StrictSongs: true, GrammarFile: "g.yaml"}
	if got != want {
		t.Fatalf("merge = %+v", got)
	}
}
