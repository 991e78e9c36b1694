// Package extract turns a minutes token stream into leader/song records.
//
// One pass owns its state (current leader, ignore flags, pending role, office
// assignments) and drops it when the pass ends. Sentence and paragraph tokens close a
// scope: the current leader is forgotten and any ignore region ends there
package extract

import (
	"iter"
	"strings"

	"minutes/internal/core/names"
	"minutes/internal/core/scanner"
)

// BreakSong is the song value of a session break record
const BreakSong = "BREAK"

// SongIndex validates page numbers
type SongIndex interface {
	Contains(id string) bool
}

// BookAbbreviation maps a book title to its short code, or returns it unchanged
type BookAbbreviation interface {
	Resolve(title string) string
}

// Options select optional behaviour for a pass
type Options struct {
	// SongTitles falls back to a quoted title when no page number was captured
	SongTitles bool `json:"song_titles"`
	// Breaks emits a BreakSong record for every session heading
	Breaks bool `json:"breaks"`
	// KeepSpace hands space tokens to the machine instead of dropping them first
	KeepSpace bool `json:"keep_space"`
	// StrictSongs rejects page numbers the song index does not know
	StrictSongs bool `json:"strict"`
}

// Record pairs one leader with one song
type Record struct {
	Leader string `json:"leader"`
	Song   string `json:"song"`
}

// IsBreak reports whether r marks a session break
func (r Record) IsBreak() bool { return r.Song == BreakSong }

// Result is everything one pass produces
type Result struct {
	Records     []Record            `json:"records"`
	Diagnostics []Diagnostic        `json:"diagnostics"`
	Offices     map[string][]string `json:"offices"`
	// Tokens counts tokens dispatched to the machine (spaces excluded unless kept)
	Tokens int `json:"tokens"`
}

// Extractor is immutable and safe to share; every Run starts a fresh pass
type Extractor struct {
	songs SongIndex
	books BookAbbreviation
	opts  Options
}

// New builds an extractor; nil collaborators mean an empty song index and no book codes
func New(songs SongIndex, books BookAbbreviation, opts Options) *Extractor {
	if songs == nil {
		songs = noSongs{}
	}
	if books == nil {
		books = identityBooks{}
	}
	return &Extractor{songs: songs, books: books, opts: opts}
}

// Options returns the pass options
func (e *Extractor) Options() Options { return e.opts }

// WithOptions returns a copy sharing collaborators but using opts
func (e *Extractor) WithOptions(opts Options) *Extractor {
	cp := *e
	cp.opts = opts
	return &cp
}

// Run consumes a token sequence; a scan error stops the pass and is returned
// alongside whatever was extracted before it
func (e *Extractor) Run(seq iter.Seq2[scanner.Token, error]) (Result, error) {
	p := e.newPass()
	for tok, err := range seq {
		if err != nil {
			return p.res, err
		}
		p.step(tok)
	}
	return p.res, nil
}

// Extract runs a pass over an already collected token slice
func (e *Extractor) Extract(tokens []scanner.Token) Result {
	p := e.newPass()
	for _, tok := range tokens {
		p.step(tok)
	}
	return p.res
}

type leader struct {
	tok   scanner.Token
	names []string
}

// pass is the per-document context
type pass struct {
	e *Extractor

	leader       *leader
	ignoreLeader bool
	ignoreSong   bool
	pendingRole  string

	res Result
}

func (e *Extractor) newPass() *pass {
	return &pass{
		e: e,
		res: Result{
			Records:     []Record{},
			Diagnostics: []Diagnostic{},
			Offices:     map[string][]string{},
		},
	}
}

func (p *pass) step(tok scanner.Token) {
	kind := KindOf(tok.Name)
	if kind == Space && !p.e.opts.KeepSpace {
		return
	}
	p.res.Tokens++

	switch kind {
	case Role:
		p.pendingRole = tok.Text

	case LeaderList:
		p.leaderList(tok)

	case Song:
		p.song(tok)

	case Session:
		if p.e.opts.Breaks {
			p.res.Records = append(p.res.Records, Record{Leader: tok.Text, Song: BreakSong})
		}

	case Sentence, Paragraph:
		p.leader = nil
		p.ignoreLeader = false
		p.ignoreSong = false

	case IgnoreLeader:
		p.ignoreLeader = true

	case IgnoreSong:
		p.ignoreSong = true

	case Space, Date, Word, Anything, Other:
		// no state change
	}
}

func (p *pass) leaderList(tok scanner.Token) {
	list, err := names.FromToken(tok)
	if err != nil || len(list) == 0 {
		p.diag(UnnamedLeader, tok, nil)
	}

	if p.pendingRole != "" {
		p.res.Offices[p.pendingRole] = append(p.res.Offices[p.pendingRole], list...)
		p.pendingRole = ""
	}

	if p.ignoreLeader {
		p.diag(IgnoredLeader, tok, list)
		return
	}
	p.leader = &leader{tok: tok, names: list}
}

func (p *pass) song(tok scanner.Token) {
	if p.ignoreSong {
		p.diag(IgnoredSong, tok, nil)
		return
	}
	if p.leader == nil || len(p.leader.names) == 0 {
		p.diag(MissingLeader, tok, nil)
		return
	}
	id, ok := p.e.resolveSong(tok)
	if !ok {
		p.diag(MissingSong, tok, p.leader.names)
		return
	}
	for _, n := range p.leader.names {
		p.res.Records = append(p.res.Records, Record{Leader: n, Song: id})
	}
}

func (p *pass) diag(kind DiagnosticKind, tok scanner.Token, list []string) {
	p.res.Diagnostics = append(p.res.Diagnostics, Diagnostic{
		Kind:   kind,
		Token:  tok.Name,
		Text:   tok.Text,
		Offset: tok.Start,
		Names:  list,
	})
}

// resolveSong prefers the page number, then (optionally) the quoted title,
// and prefixes a book code when a book title was captured
func (e *Extractor) resolveSong(tok scanner.Token) (string, bool) {
	book, _ := tok.First("book")
	book = strings.TrimSpace(book)

	var song string
	if num, ok := tok.First("number"); ok && num != "" {
		if book != "" {
			song = num
		} else if page, ok := e.page(strings.ToLower(num)); ok {
			song = page
		}
	}
	if song == "" && e.opts.SongTitles {
		if title, ok := tok.First("title"); ok && title != "" && !strings.HasSuffix(title, "Singing") {
			song = title
		}
	}
	if song == "" {
		return "", false
	}
	if book != "" {
		song = e.books.Resolve(book) + " " + song
	}
	return song, true
}

// page checks num against the index, trimming a trailing t/b (top/bottom of page)
// when only the bare page is known
func (e *Extractor) page(num string) (string, bool) {
	if e.songs.Contains(num) {
		return num, true
	}
	if n := len(num); n > 1 && (num[n-1] == 't' || num[n-1] == 'b') && digits(num[:n-1]) {
		if e.songs.Contains(num[:n-1]) {
			return num[:n-1], true
		}
	}
	if e.opts.StrictSongs {
		return "", false
	}
	return num, true
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

type noSongs struct{}

func (noSongs) Contains(string) bool { return false }

type identityBooks struct{}

func (identityBooks) Resolve(title string) string { return title }
