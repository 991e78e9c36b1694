package module

import "minutes/internal/platform/config"

// Options holds configuration settings for the extract module
type Options struct {
	Workers     int
	PageSize    int
	SongTitles  bool
	Breaks      bool
	KeepSpace   bool
	StrictSongs bool
	// GrammarFile replaces the embedded minutes grammar
	GrammarFile string
	// BooksFile layers a YAML title: abbreviation table over the default books
	BooksFile string
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_EXTRACT_")
	return Options{
		Workers:     ef.MayInt("WORKERS", 4),
		PageSize:    ef.MayInt("PAGE", 200),
		SongTitles:  ef.MayBool("SONG_TITLES", false),
		Breaks:      ef.MayBool("BREAKS", false),
		KeepSpace:   ef.MayBool("KEEP_SPACE", false),
		StrictSongs: ef.MayBool("STRICT", false),
		GrammarFile: ef.MayString("GRAMMAR_FILE", ""),
		BooksFile:   ef.MayString("BOOKS_FILE", ""),
	}
}

// merge layers non-zero overrides over o; booleans only ever switch on
func (o Options) merge(ov Options) Options {
	if ov.Workers != 0 {
		o.Workers = ov.Workers
	}
	if ov.PageSize != 0 {
		o.PageSize = ov.PageSize
	}
	if ov.GrammarFile != "" {
		o.GrammarFile = ov.GrammarFile
	}
	if ov.BooksFile != "" {
		o.BooksFile = ov.BooksFile
	}
	o.SongTitles = o.SongTitles || ov.SongTitles
	o.Breaks = o.Breaks || ov.Breaks
	o.KeepSpace = o.KeepSpace || ov.KeepSpace
	o.StrictSongs = o.StrictSongs || ov.StrictSongs
	return o
}
