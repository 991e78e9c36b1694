// Package strings holds the string guards module wiring relies on
package strings

import std "strings"

// MustString returns s, panicking with name when s is blank
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount prefix to one leading slash and no trailing slash
// "extract/" and " /extract " both become "/extract"; a blank or root prefix panics
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}
