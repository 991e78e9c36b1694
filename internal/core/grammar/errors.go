package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGrammar is returned for structural problems with a Source
// (empty order, duplicate order entries)
var ErrInvalidGrammar = errors.New("grammar: invalid grammar")

// UnknownPatternError reports a reference to a pattern that is not defined
// Pattern is empty when the unknown name comes from the top-level order
type UnknownPatternError struct {
	Pattern string
	Ref     string
}

func (e *UnknownPatternError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("grammar: unknown pattern %q in order", e.Ref)
	}
	return fmt.Sprintf("grammar: pattern %q references unknown pattern %q", e.Pattern, e.Ref)
}

// CyclicReferenceError reports a macro cycle; Cycle starts and ends on the same name
type CyclicReferenceError struct {
	Cycle []string
}

func (e *CyclicReferenceError) Error() string {
	return "grammar: cyclic pattern reference " + strings.Join(e.Cycle, " -> ")
}

// InvalidPatternSyntaxError wraps an engine compile failure for a resolved pattern
// Pattern is "*" when the combined automaton failed after every pattern compiled alone
type InvalidPatternSyntaxError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternSyntaxError) Error() string {
	return fmt.Sprintf("grammar: compile %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternSyntaxError) Unwrap() error { return e.Err }
