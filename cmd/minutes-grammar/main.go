// Command minutes-grammar checks, dumps and exercises a minutes grammar
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"minutes/internal/core/extract"
	"minutes/internal/core/grammar"
	"minutes/internal/core/normalize"
	"minutes/internal/core/scanner"
)

const usage = `usage: minutes-grammar <check|dump|tokens> [flags]

  check   compile the grammar and print its fingerprint
  dump    print the grammar as YAML (-resolved expands macros, -pattern prints the combined regex)
  tokens  scan stdin and print one JSON token per line
`

var errUsage = errors.New("bad usage")

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout)
	if errors.Is(err, errUsage) {
		_, _ = fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	must(err)
}

func run(args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		file      = fs.String("grammar", "", "grammar YAML (default: embedded minutes grammar)")
		resolved  = fs.Bool("resolved", false, "dump: expand macros in every pattern")
		pattern   = fs.Bool("pattern", false, "dump: print only the combined pattern")
		keepSpace = fs.Bool("keep-space", false, "tokens: keep whitespace tokens")
		raw       = fs.Bool("raw", false, "tokens: skip text normalization")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	g, err := load(*file)
	if err != nil {
		return err
	}

	switch cmd {
	case "check":
		_, err = fmt.Fprintf(out, "ok %s (%d top-level patterns)\n", g.Fingerprint(), len(g.Order()))
		return err
	case "dump":
		if *pattern {
			_, err = fmt.Fprintln(out, g.Pattern())
			return err
		}
		return dump(out, g, *resolved)
	case "tokens":
		return tokens(in, out, g, *keepSpace, *raw)
	}
	return errUsage
}

func load(path string) (*grammar.Compiled, error) {
	if path == "" {
		return grammar.Minutes()
	}
	return grammar.LoadFile(path)
}

// dumpFile mirrors the on-disk layout so a dump can be edited and loaded back
type dumpFile struct {
	Fingerprint string            `yaml:"fingerprint"`
	Order       []string          `yaml:"order"`
	Patterns    map[string]string `yaml:"patterns"`
}

func dump(out io.Writer, g *grammar.Compiled, resolved bool) error {
	f := dumpFile{Fingerprint: g.Fingerprint(), Order: g.Order(), Patterns: map[string]string{}}
	for _, d := range g.Definitions() {
		if resolved {
			f.Patterns[d.Name] = d.Resolved
		} else {
			f.Patterns[d.Name] = d.Template
		}
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return enc.Close()
}

func tokens(in io.Reader, out io.Writer, g *grammar.Compiled, keepSpace, raw bool) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("tokens: read input: %w", err)
	}
	text := string(data)
	if !raw {
		text = normalize.New().Minutes(data)
	}

	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for tok, err := range scanner.New(g).Scan(text) {
		if err != nil {
			_ = w.Flush()
			return err
		}
		if !keepSpace && extract.KindOf(tok.Name) == extract.Space {
			continue
		}
		if err := enc.Encode(tok); err != nil {
			return err
		}
	}
	return w.Flush()
}
