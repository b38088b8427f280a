package queryengine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/luillyfe/resume-insights/internal/ingestion"
	"github.com/luillyfe/resume-insights/internal/llm"
	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/vectorstore"
)

// maxConcurrentEmbeddings bounds parallel embedding calls while indexing.
const maxConcurrentEmbeddings = 4

// BuildOptions control document ingestion and retrieval.
type BuildOptions struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
}

// BuildFromFile reads a resume PDF from disk, chunks its text, embeds
// every chunk into the store, and returns an engine over the index.
func BuildFromFile(ctx context.Context, client llm.Client, store vectorstore.Store, path string, opts BuildOptions) (*RetrievalEngine, error) {
	defer observability.ObserveStage("index", time.Now())

	text, err := ingestion.ExtractPDFText(path)
	if err != nil {
		return nil, &IndexError{Message: fmt.Sprintf("reading %s", path), Cause: err}
	}

	chunks := ingestion.Chunk(ingestion.CleanText(text), opts.ChunkSize, opts.ChunkOverlap)
	if len(chunks) == 0 {
		return nil, &IndexError{Message: "document produced no indexable text"}
	}

	docs := make([]vectorstore.Document, len(chunks))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmbeddings)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			vector, err := client.EmbedText(gCtx, chunk)
			if err != nil {
				return &IndexError{Message: fmt.Sprintf("embedding chunk %d", i), Cause: err}
			}
			docs[i] = vectorstore.Document{ID: uuid.NewString(), Text: chunk, Vector: vector}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := store.Upsert(ctx, docs); err != nil {
		return nil, &IndexError{Message: "loading index", Cause: err}
	}

	return NewRetrievalEngine(client, store, opts.TopK), nil
}
