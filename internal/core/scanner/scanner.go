// Package scanner turns text into a gapless token stream using a compiled grammar
package scanner

import (
	"iter"
	"slices"

	"minutes/internal/core/grammar"

	"github.com/dlclark/regexp2"
)

// Scanner applies one compiled grammar; it holds no per-scan state
type Scanner struct {
	g     *grammar.Compiled
	order []string
	caps  map[string][]string
}

// New returns a scanner over c
func New(c *grammar.Compiled) *Scanner {
	s := &Scanner{g: c, order: c.Order(), caps: make(map[string][]string)}
	for _, name := range s.order {
		s.caps[name] = c.Captures(name)
	}
	return s
}

// Grammar returns the compiled grammar behind the scanner
func (s *Scanner) Grammar() *grammar.Compiled { return s.g }

// Scan lazily yields tokens from offset 0 to len(text)
// every range over the returned sequence starts a fresh scan
// on a PartialMatchError the error is yielded once and the sequence ends
func (s *Scanner) Scan(text string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		if text == "" {
			return
		}
		runes := []rune(text)
		offs := byteOffsets(text, len(runes))
		re := s.g.Regexp()

		pos := 0
		for pos < len(runes) {
			m, err := re.FindRunesMatchStartingAt(runes, pos)
			if err != nil {
				// only a match timeout lands here
				yield(Token{}, err)
				return
			}
			if m == nil || m.Index != pos {
				yield(Token{}, &PartialMatchError{Offset: offs[pos]})
				return
			}
			if m.Length == 0 {
				yield(Token{}, &PartialMatchError{Offset: offs[pos], Empty: true})
				return
			}
			end := pos + m.Length
			if !yield(s.token(m, offs, pos, end, text), nil) {
				return
			}
			pos = end
		}
	}
}

// Tokenize collects the whole stream
func (s *Scanner) Tokenize(text string) ([]Token, error) {
	var out []Token
	for tok, err := range s.Scan(text) {
		if err != nil {
			return out, err
		}
		out = append(out, tok)
	}
	return out, nil
}

func (s *Scanner) token(m *regexp2.Match, offs []int, start, end int, text string) Token {
	tok := Token{
		Start: offs[start],
		End:   offs[end],
	}
	tok.Text = text[tok.Start:tok.End]

	for _, name := range s.order {
		if g := m.GroupByName(name); g != nil && len(g.Captures) > 0 {
			tok.Name = name
			break
		}
	}

	for _, cn := range s.caps[tok.Name] {
		g := m.GroupByName(cn)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		list := make([]Capture, 0, len(g.Captures))
		for _, c := range g.Captures {
			list = append(list, Capture{Offset: offs[c.Index], Text: c.String()})
		}
		// groups sharing a name can fire out of textual order
		slices.SortStableFunc(list, func(a, b Capture) int { return a.Offset - b.Offset })
		if tok.Captures == nil {
			tok.Captures = make(map[string][]Capture, len(s.caps[tok.Name]))
		}
		tok.Captures[cn] = list
	}
	return tok
}

// byteOffsets maps rune index -> byte offset, plus a trailing entry for len(text)
// ranging a string and converting it to []rune agree on invalid bytes, so the indexes line up
func byteOffsets(text string, n int) []int {
	offs := make([]int, 0, n+1)
	for i := range text {
		offs = append(offs, i)
	}
	return append(offs, len(text))
}
