package domain

import "minutes/internal/core/extract"

// Compare scores extracted against recorded as multisets of (leader, song)
// session breaks are not scored
func Compare(extracted, recorded []extract.Record) Score {
	want := make(map[extract.Record]int, len(recorded))
	for _, r := range recorded {
		if !r.IsBreak() {
			want[r]++
		}
	}
	var s Score
	for _, r := range extracted {
		if r.IsBreak() {
			continue
		}
		if want[r] > 0 {
			want[r]--
			s.Matched++
			continue
		}
		s.Extra++
	}
	for _, n := range want {
		s.Missing += n
	}
	return s
}
