package domain

import (
	"testing"

	"minutes/internal/core/extract"
)

func TestCompare(t *testing.T) {
	r := func(leader, song string) extract.Record { return extract.Record{Leader: leader, Song: song} }

	tests := []struct {
		name      string
		extracted []extract.Record
		recorded  []extract.Record
		want      Score
	}{
		{name: "empty", want: Score{}},
		{
			name:      "exact",
			extracted: []extract.Record{r("A", "1"), r("B", "2")},
			recorded:  []extract.Record{r("B", "2"), r("A", "1")},
			want:      Score{Matched: 2},
		},
		{
			name:      "duplicates count once each",
			extracted: []extract.Record{r("A", "1"), r("A", "1")},
			recorded:  []extract.Record{r("A", "1")},
			want:      Score{Matched: 1, Extra: 1},
		},
		{
			name:      "missing and extra",
			extracted: []extract.Record{r("A", "1"), r("C", "3")},
			recorded:  []extract.Record{r("A", "1"), r("B", "2")},
			want:      Score{Matched: 1, Missing: 1, Extra: 1},
		},
		{
			name:      "breaks ignored",
			extracted: []extract.Record{r("MORNING SESSION", extract.BreakSong), r("A", "1")},
			recorded:  []extract.Record{r("A", "1")},
			want:      Score{Matched: 1},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compare(tc.extracted, tc.recorded); got != tc.want {
				t.Fatalf("Compare = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestScore_Ratios(t *testing.T) {
	var s Score
	if s.Recall() != 1 || s.Precision() != 1 {
		t.Fatalf("empty score ratios should be 1")
	}
	s.Add(Score{Matched: 3, Missing: 1})
	s.Add(Score{Extra: 1})
	if s.Recall() != 0.75 || s.Precision() != 0.75 {
		t.Fatalf("recall=%v precision=%v", s.Recall(), s.Precision())
	}
}
