// Package domain holds the extract API wire types
package domain

import (
	"minutes/internal/core/extract"
	"minutes/internal/core/scanner"
)

// ExtractInput is the POST /extract body
// unset flags fall back to the server defaults
type ExtractInput struct {
	Text       string `json:"text"        validate:"required,max=1048576" example:"John Smith led 42."`
	SongTitles *bool  `json:"song_titles,omitempty"`
	Breaks     *bool  `json:"breaks,omitempty"`
	KeepSpace  *bool  `json:"keep_space,omitempty"`
	Strict     *bool  `json:"strict,omitempty"`
}

// Options overlays the set flags on def
func (in ExtractInput) Options(def extract.Options) extract.Options {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&def.SongTitles, in.SongTitles)
	set(&def.Breaks, in.Breaks)
	set(&def.KeepSpace, in.KeepSpace)
	set(&def.StrictSongs, in.Strict)
	return def
}

// ExtractOutput is the POST /extract result
type ExtractOutput struct {
	Records     []extract.Record     `json:"records"`
	Diagnostics []extract.Diagnostic `json:"diagnostics"`
	Offices     map[string][]string  `json:"offices"`
	Grammar     string               `json:"grammar" example:"5d41402abc4b2a76"`
}

// TokensInput is the POST /extract/tokens body
type TokensInput struct {
	Text      string `json:"text"       validate:"required,max=1048576"`
	KeepSpace bool   `json:"keep_space"`
}

// TokensOutput lists scanned tokens in input order
type TokensOutput struct {
	Count  int             `json:"count"`
	Tokens []scanner.Token `json:"tokens"`
}
