package domain

import "context"

// ReaderPort reads minutes documents
type ReaderPort interface {
	// Get returns one normalized document; a missing id is a NotFound error
	Get(ctx context.Context, id int64) (Document, error)
	// Page returns up to limit ids greater than afterID in ascending order
	Page(ctx context.Context, afterID int64, limit int) ([]int64, error)
	// Index lists every document without text
	Index(ctx context.Context) ([]Summary, error)
}

// WriterPort imports minutes documents
type WriterPort interface {
	Put(ctx context.Context, r Raw) error
}
