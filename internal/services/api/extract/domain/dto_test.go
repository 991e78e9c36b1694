package domain

import (
	"testing"

	"minutes/internal/core/extract"
)

func TestExtractInput_Options(t *testing.T) {
	on, off := true, false
	def := extract.Options{Breaks: true, KeepSpace: true}

	got := ExtractInput{SongTitles: &on, Breaks: &off}.Options(def)
	want := extract.Options{SongTitles: true, Breaks: false, KeepSpace: true}
	if got != want {
		t.Fatalf("Options = %+v, want %+v", got, want)
	}
	if (ExtractInput{}).Options(def) != def {
		t.Fatalf("unset flags should keep defaults")
	}
}
