// Package vectorstore provides the embedding stores behind the retrieval
// engine. The in-memory store is the default; resume indexes are scoped to a
// session and are not meant to outlive it. A qdrant-backed store can be
// swapped in through configuration for hosts that want the index off-heap.
package vectorstore

import "context"

// Document is one embedded chunk of source text.
type Document struct {
	ID     string
	Text   string
	Vector []float32
}

// Match is a document returned from a similarity search.
type Match struct {
	Document
	Score float32
}

// Store indexes embedded documents and retrieves the nearest ones to a query
// vector. Implementations must be safe for concurrent use.
type Store interface {
	Upsert(ctx context.Context, docs []Document) error
	Search(ctx context.Context, vector []float32, limit int) ([]Match, error)
	// Close releases the store and any remote resources tied to this index.
	Close() error
}
