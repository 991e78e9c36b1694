package extract

// DiagnosticKind names a soft extraction anomaly
type DiagnosticKind string

// Diagnostic kinds
const (
	MissingLeader DiagnosticKind = "MissingLeader"
	MissingSong   DiagnosticKind = "MissingSong"
	IgnoredLeader DiagnosticKind = "IgnoredLeader"
	IgnoredSong   DiagnosticKind = "IgnoredSong"
	// UnnamedLeader: a leader list produced no names
	UnnamedLeader DiagnosticKind = "UnnamedLeader"
)

// Diagnostic describes one anomaly; it never stops a pass
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind"`
	Token  string         `json:"token"`
	Text   string         `json:"text"`
	Offset int            `json:"offset"`
	Names  []string       `json:"names,omitempty"`
}

// Count tallies diagnostics by kind
func Count(ds []Diagnostic) map[DiagnosticKind]int {
	out := make(map[DiagnosticKind]int, 4)
	for _, d := range ds {
		out[d.Kind]++
	}
	return out
}
