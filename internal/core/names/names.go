// Package names rebuilds person names from the first, middle and last captures of a
// leader list such as "John, Mary, and Jane Smith".
//
// Captures are walked right to left so a trailing surname is seen before the first names
// that share it; each first name closes one person and the builder falls back to the
// most recent surname for the next (earlier) person in the list
package names

import (
	"errors"
	"slices"

	"minutes/internal/core/scanner"
)

// Capture labels read from a leader-list token
const (
	First  = "first"
	Middle = "middle"
	Last   = "last"
)

// Labels lists the capture names Assemble reads
var Labels = []string{First, Middle, Last}

// ErrNoLastName is a warning: the list had no surname, so no names were produced
var ErrNoLastName = errors.New("names: leader list has no last name")

type part struct {
	offset int
	label  string
	text   string
}

// Assemble returns the names in document order
// prefixes (Dr., Rev., ...) never reach it because the grammar does not capture them
func Assemble(caps map[string][]scanner.Capture) ([]string, error) {
	if len(caps[Last]) == 0 {
		return nil, ErrNoLastName
	}

	parts := make([]part, 0, len(caps[First])+len(caps[Middle])+len(caps[Last]))
	for _, label := range Labels {
		for _, c := range caps[label] {
			parts = append(parts, part{offset: c.Offset, label: label, text: c.Text})
		}
	}
	slices.SortStableFunc(parts, func(a, b part) int { return b.offset - a.offset })

	var (
		out         []string
		currentLast string
		building    string
	)
	for _, p := range parts {
		switch p.label {
		case Last:
			currentLast = p.text
			building = p.text
		case Middle:
			building = p.text + " " + building
		case First:
			building = p.text + " " + building
			out = append(out, building)
			building = currentLast
		}
	}
	if len(out) == 0 {
		// no first name anywhere: each surname stands alone ("Smith")
		for _, c := range caps[Last] {
			out = append(out, c.Text)
		}
		return out, nil
	}
	slices.Reverse(out)
	return out, nil
}

// FromToken assembles the names carried by a leader-list token
func FromToken(t scanner.Token) ([]string, error) { return Assemble(t.Captures) }
