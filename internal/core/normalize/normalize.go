// Package normalize turns raw minutes bytes into the clean text the scanner expects
// Pipeline order
// 1 decode as UTF-8, falling back to Mac Roman for legacy records
// 2 fold literal backslash-n escapes (and the blanks around them) to one space
// 3 vertical tab and carriage return become newlines (paragraph breaks)
// 4 drop other control characters except tab
// 5 Unicode NFC composition
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// escapedNewline matches runs of literal backslash-n, as stored by some imports
var escapedNewline = regexp.MustCompile(`\s*(?:\\n+\s*)+`)

// Normalizer is concurrency safe; transformer chains come from a pool
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Map(func(r rune) rune {
				switch r {
				case '\v', '\r':
					return '\n'
				}
				return r
			}),
			runes.Remove(runes.Predicate(func(r rune) bool {
				return unicode.IsControl(r) && r != '\n' && r != '\t'
			})),
			norm.NFC,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Decode returns raw as text, reading it as Mac Roman when it is not valid UTF-8
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	out, err := charmap.Macintosh.NewDecoder().Bytes(raw)
	if err != nil {
		// every byte has a Mac Roman mapping; keep what UTF-8 can salvage
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(out)
}

// Text applies steps 2 to 5
func (n *Normalizer) Text(s string) string {
	if s == "" {
		return ""
	}
	if strings.Contains(s, `\n`) {
		s = escapedNewline.ReplaceAllString(s, " ")
	}

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// Minutes decodes and normalizes one stored record
func (n *Normalizer) Minutes(raw []byte) string { return n.Text(Decode(raw)) }
