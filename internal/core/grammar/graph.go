package grammar

import (
	"regexp"
	"slices"
	"strings"
)

// macroRe matches a {{name}} reference; surrounding blanks inside the braces are tolerated
var macroRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// refs returns the distinct pattern names a template references, in first-seen order
func refs(template string) []string {
	var out []string
	for _, m := range macroRe.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(out, m[1]) {
			out = append(out, m[1])
		}
	}
	return out
}

// graph is the pattern reference graph: name -> names it references
type graph map[string][]string

// buildGraph validates every reference and returns the graph
// unknown references fail here, before any cycle analysis
func buildGraph(patterns map[string]string) (graph, error) {
	g := make(graph, len(patterns))
	for _, name := range sortedKeys(patterns) {
		deps := refs(patterns[name])
		for _, d := range deps {
			if _, ok := patterns[d]; !ok {
				return nil, &UnknownPatternError{Pattern: name, Ref: d}
			}
		}
		g[name] = deps
	}
	return g, nil
}

// topo returns the names in dependency order (leaves first)
// a back edge during the walk is reported as a cycle with its path
func (g graph) topo() ([]string, error) {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int, len(g))
	order := make([]string, 0, len(g))
	var stack []string

	var visit func(n string) error
	visit = func(n string) error {
		switch state[n] {
		case done:
			return nil
		case active:
			i := slices.Index(stack, n)
			cycle := append(slices.Clone(stack[i:]), n)
			return &CyclicReferenceError{Cycle: cycle}
		}
		state[n] = active
		stack = append(stack, n)
		for _, d := range g[n] {
			if err := visit(d); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		order = append(order, n)
		return nil
	}

	for _, n := range sortedKeys(g) {
		if err := visit(n); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// pythonGroup is the (?P<name> capture opener, which regexp2 spells (?<name>
var pythonGroup = regexp.MustCompile(`\(\?P<`)

// resolve expands every template in dependency order
// each reference becomes a non-capturing group around the already resolved text
func resolve(patterns map[string]string, order []string, verbose bool) map[string]string {
	closer := ")"
	if verbose {
		// a trailing # comment in the sub-pattern must not swallow the closing paren
		closer = "\n)"
	}
	out := make(map[string]string, len(order))
	for _, name := range order {
		tpl := pythonGroup.ReplaceAllLiteralString(patterns[name], "(?<")
		out[name] = macroRe.ReplaceAllStringFunc(tpl, func(ref string) string {
			sub := macroRe.FindStringSubmatch(ref)[1]
			var b strings.Builder
			b.WriteString("(?:")
			b.WriteString(out[sub])
			b.WriteString(closer)
			return b.String()
		})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
