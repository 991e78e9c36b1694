// Package version reports build metadata for the minutes binaries
package version

import "runtime/debug"

// BuildInfo is what /version returns
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Grammar string `json:"grammar,omitempty"`
}

// Info returns build metadata for service. Values are stamped with
//
//	-ldflags "-X 'minutes/internal/core/version.version=v0.1.0'
//	  -X 'minutes/internal/core/version.commit=abcd' -X 'minutes/internal/core/version.date=2026-01-02'"
func Info(service string) BuildInfo {
	if service == "" {
		service = "minutes"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commitOr(commit),
		Date:    date,
	}
}

// commitOr falls back to the vcs revision go build embeds when no commit was stamped
func commitOr(stamped string) string {
	if stamped != "none" {
		return stamped
	}
	bi, ok := readBuildInfo()
	if !ok {
		return stamped
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value[:min(len(s.Value), 12)]
		}
	}
	return stamped
}

var readBuildInfo = debug.ReadBuildInfo

// WithGrammar stamps the fingerprint of the grammar the process is running
func (b BuildInfo) WithGrammar(fingerprint string) BuildInfo {
	b.Grammar = fingerprint
	return b
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
