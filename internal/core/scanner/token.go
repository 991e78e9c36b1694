package scanner

import "fmt"

// Capture is one occurrence of a named sub-capture; Offset is a byte offset into the input
type Capture struct {
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

// Token is one scanned unit; Start and End are byte offsets, End exclusive
type Token struct {
	Name     string               `json:"name"`
	Text     string               `json:"text"`
	Start    int                  `json:"start"`
	End      int                  `json:"end"`
	Captures map[string][]Capture `json:"captures,omitempty"`
}

// First returns the leftmost occurrence of a capture
func (t Token) First(name string) (string, bool) {
	cs := t.Captures[name]
	if len(cs) == 0 {
		return "", false
	}
	return cs[0].Text, true
}

// All returns every occurrence of a capture in document order
func (t Token) All(name string) []string {
	cs := t.Captures[name]
	if len(cs) == 0 {
		return nil
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text
	}
	return out
}

// Has reports whether the capture occurred at least once
func (t Token) Has(name string) bool { return len(t.Captures[name]) > 0 }

func (t Token) String() string { return fmt.Sprintf("%s(%q)", t.Name, t.Text) }

// PartialMatchError means no pattern matched at Offset
// with a catch-all in the grammar this is a grammar defect, never an input defect
type PartialMatchError struct {
	Offset int
	Empty  bool
}

func (e *PartialMatchError) Error() string {
	if e.Empty {
		return fmt.Sprintf("scanner: empty match at offset %d", e.Offset)
	}
	return fmt.Sprintf("scanner: no pattern matches at offset %d", e.Offset)
}
