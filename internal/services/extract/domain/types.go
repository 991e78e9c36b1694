// Package domain defines the extraction runner ports and results
package domain

import (
	"context"

	"github.com/google/uuid"

	"minutes/internal/core/extract"
	"minutes/internal/core/scanner"
	leadsdom "minutes/internal/services/leads/domain"
	mindom "minutes/internal/services/minutes/domain"
)

// RunOptions selects the documents of one batch run
type RunOptions struct {
	// From and To bound the minutes ids, inclusive; zero leaves a side open
	From, To int64
	Workers  int
	Page     int
	// DryRun extracts without writing leads
	DryRun bool
	// Evaluate scores every document against its recorded leads
	Evaluate bool
}

// Summary totals one batch run
type Summary struct {
	RunID       uuid.UUID                      `json:"run_id"`
	Docs        int                            `json:"docs"`
	Records     int                            `json:"records"`
	Diagnostics int                            `json:"diagnostics"`
	ByKind      map[extract.DiagnosticKind]int `json:"by_kind"`
	Failed      int                            `json:"failed"`
	Score       *leadsdom.Score                `json:"score,omitempty"`
}

// DocumentResult is one stored document's extraction
type DocumentResult struct {
	Minutes mindom.Summary  `json:"minutes"`
	Result  extract.Result  `json:"result"`
	Score   *leadsdom.Score `json:"score,omitempty"`
}

// GrammarInfo describes the compiled grammar in use
type GrammarInfo struct {
	Fingerprint string              `json:"fingerprint"`
	Order       []string            `json:"order"`
	Captures    map[string][]string `json:"captures"`
}

// ExtractorPort runs extraction on text and stored documents
type ExtractorPort interface {
	Extract(ctx context.Context, text string, opts extract.Options) (extract.Result, error)
	Tokens(ctx context.Context, text string, keepSpace bool) ([]scanner.Token, error)
	Document(ctx context.Context, id int64, opts extract.Options, evaluate bool) (DocumentResult, error)
	Grammar() GrammarInfo
	Defaults() extract.Options
}

// RunnerPort runs batches over the minutes table
type RunnerPort interface {
	Run(ctx context.Context, in RunOptions) (Summary, error)
}
