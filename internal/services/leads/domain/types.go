// Package domain defines persisted leads and extraction scoring
package domain

import (
	"context"

	"github.com/google/uuid"

	"minutes/internal/core/extract"
)

// Score compares extracted leads against the recorded ones for a document
type Score struct {
	Matched int `json:"matched"`
	Missing int `json:"missing"`
	Extra   int `json:"extra"`
}

// Add accumulates o into s
func (s *Score) Add(o Score) {
	s.Matched += o.Matched
	s.Missing += o.Missing
	s.Extra += o.Extra
}

// Recall is Matched over everything recorded; 1 when nothing was recorded
func (s Score) Recall() float64 {
	if s.Matched+s.Missing == 0 {
		return 1
	}
	return float64(s.Matched) / float64(s.Matched+s.Missing)
}

// Precision is Matched over everything extracted; 1 when nothing was extracted
func (s Score) Precision() float64 {
	if s.Matched+s.Extra == 0 {
		return 1
	}
	return float64(s.Matched) / float64(s.Matched+s.Extra)
}

// WriterPort persists the leads of one document
type WriterPort interface {
	// Write replaces the stored leads of minutesID with recs
	Write(ctx context.Context, minutesID int64, runID uuid.UUID, recs []extract.Record) error
}

// RecordedPort reads the hand-curated leads of one document
type RecordedPort interface {
	Recorded(ctx context.Context, minutesID int64) ([]extract.Record, error)
}
