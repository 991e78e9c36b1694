// Package grammar compiles named, mutually referencing pattern templates into one
// priority ordered scanning automaton.
//
// Templates reference each other with {{name}}. References are resolved over an explicit
// dependency graph, so unknown names and cycles are reported before anything is compiled.
// Top-level patterns are wrapped in named groups and alternated in grammar order; at an
// equal start offset the earlier pattern wins regardless of match length
package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Source is an uncompiled grammar: a namespace of templates plus the top-level order
type Source struct {
	Patterns map[string]string
	Order    []string
}

// Definition is one named pattern before and after macro expansion
type Definition struct {
	Name     string
	Template string
	Resolved string
}

// Compiled is the immutable result of Compile
// safe for concurrent use by any number of scanners
type Compiled struct {
	re       *regexp2.Regexp
	pattern  string
	order    []string
	captures map[string][]string
	defs     map[string]Definition
	sum      string
}

type settings struct {
	verbose bool
	timeout time.Duration
}

// Option tweaks compilation
type Option func(*settings)

// WithVerbose toggles whitespace and # comment stripping in templates (default on)
func WithVerbose(on bool) Option { return func(s *settings) { s.verbose = on } }

// WithMatchTimeout bounds a single match attempt; zero means no bound
func WithMatchTimeout(d time.Duration) Option { return func(s *settings) { s.timeout = d } }

// captureRe finds named group openers in both (?<n> and (?P<n> form, skipping lookbehinds
var captureRe = regexp.MustCompile(`\(\?P?<([^!=>][^>]*)>`)

// Compile validates, resolves and assembles src
// every failure is one of UnknownPatternError, CyclicReferenceError,
// InvalidPatternSyntaxError or ErrInvalidGrammar
func Compile(src Source, opts ...Option) (*Compiled, error) {
	st := settings{verbose: true}
	for _, o := range opts {
		o(&st)
	}

	if len(src.Order) == 0 {
		return nil, fmt.Errorf("%w: empty order", ErrInvalidGrammar)
	}
	seen := make(map[string]struct{}, len(src.Order))
	for _, name := range src.Order {
		if _, ok := src.Patterns[name]; !ok {
			return nil, &UnknownPatternError{Ref: name}
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q listed twice in order", ErrInvalidGrammar, name)
		}
		seen[name] = struct{}{}
	}

	g, err := buildGraph(src.Patterns)
	if err != nil {
		return nil, err
	}
	order, err := g.topo()
	if err != nil {
		return nil, err
	}
	resolved := resolve(src.Patterns, order, st.verbose)

	ropts := regexp2.RegexOptions(regexp2.ExplicitCapture)
	if st.verbose {
		ropts |= regexp2.IgnorePatternWhitespace
	}

	c := &Compiled{
		order:    slices.Clone(src.Order),
		captures: make(map[string][]string, len(src.Order)),
		defs:     make(map[string]Definition, len(src.Patterns)),
	}
	for name, tpl := range src.Patterns {
		c.defs[name] = Definition{Name: name, Template: tpl, Resolved: resolved[name]}
	}
	// every definition must compile alone, referenced or not
	for _, name := range sortedKeys(c.defs) {
		if _, err := regexp2.Compile(resolved[name], ropts); err != nil {
			return nil, &InvalidPatternSyntaxError{Pattern: name, Err: err}
		}
	}

	closer := ")"
	if st.verbose {
		closer = "\n)"
	}
	alts := make([]string, 0, len(src.Order))
	for _, name := range src.Order {
		body := resolved[name]
		caps := discoverCaptures(body)
		for _, cn := range caps {
			if _, clash := seen[cn]; clash {
				return nil, &InvalidPatternSyntaxError{
					Pattern: name,
					Err:     fmt.Errorf("capture %q shadows a top-level pattern", cn),
				}
			}
		}
		c.captures[name] = caps
		alts = append(alts, "(?<"+name+">"+body+closer)
	}

	// \G pins every attempt to the scan position so a miss is reported where it happens
	c.pattern = `\G(?:` + strings.Join(alts, "|") + closer
	re, err := regexp2.Compile(c.pattern, ropts)
	if err != nil {
		return nil, &InvalidPatternSyntaxError{Pattern: "*", Err: err}
	}
	if st.timeout > 0 {
		re.MatchTimeout = st.timeout
	}
	c.re = re

	sum := sha256.Sum256([]byte(c.pattern))
	c.sum = hex.EncodeToString(sum[:6])
	return c, nil
}

// discoverCaptures scans a resolved pattern for named captures, deduplicated in order
func discoverCaptures(pattern string) []string {
	var out []string
	for _, m := range captureRe.FindAllStringSubmatch(pattern, -1) {
		if !slices.Contains(out, m[1]) {
			out = append(out, m[1])
		}
	}
	return out
}

// Regexp exposes the combined automaton to the scanner
func (c *Compiled) Regexp() *regexp2.Regexp { return c.re }

// Order returns the top-level names in priority order
func (c *Compiled) Order() []string { return slices.Clone(c.order) }

// Captures returns the nested capture names declared inside a top-level pattern
func (c *Compiled) Captures(name string) []string { return slices.Clone(c.captures[name]) }

// Resolved returns the fully expanded text of any defined pattern
func (c *Compiled) Resolved(name string) (string, bool) {
	d, ok := c.defs[name]
	return d.Resolved, ok
}

// Definitions returns every pattern sorted by name
func (c *Compiled) Definitions() []Definition {
	out := make([]Definition, 0, len(c.defs))
	for _, name := range sortedKeys(c.defs) {
		out = append(out, c.defs[name])
	}
	return out
}

// Pattern returns the combined source handed to the engine
func (c *Compiled) Pattern() string { return c.pattern }

// Fingerprint is a short stable hash of the combined pattern
func (c *Compiled) Fingerprint() string { return c.sum }
