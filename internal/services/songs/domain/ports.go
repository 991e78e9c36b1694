// Package domain defines the song index port
package domain

import (
	"context"

	"minutes/internal/core/songbook"
)

// IndexPort serves the set of known song pages
type IndexPort interface {
	// Index returns the loaded index; the first call reads the songs table
	Index(ctx context.Context) (*songbook.Index, error)
}
