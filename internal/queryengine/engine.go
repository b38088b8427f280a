package queryengine

import (
	"context"
	"strings"
	"time"

	"github.com/luillyfe/resume-insights/internal/llm"
	"github.com/luillyfe/resume-insights/internal/observability"
	"github.com/luillyfe/resume-insights/internal/prompts"
	"github.com/luillyfe/resume-insights/internal/vectorstore"
)

// DefaultSimilarityTopK is the number of passages retrieved per query.
const DefaultSimilarityTopK = 3

// Engine answers free-form prompts about an ingested document.
type Engine interface {
	Query(ctx context.Context, prompt string) (string, error)
}

// RetrievalEngine embeds each prompt, pulls the closest passages from
// the vector store, and has the model synthesize an answer grounded in
// the retrieved context rather than prior knowledge.
type RetrievalEngine struct {
	llm   llm.Client
	store vectorstore.Store
	topK  int
}

// NewRetrievalEngine creates an engine over an already populated store.
func NewRetrievalEngine(client llm.Client, store vectorstore.Store, topK int) *RetrievalEngine {
	if topK <= 0 {
		topK = DefaultSimilarityTopK
	}
	return &RetrievalEngine{llm: client, store: store, topK: topK}
}

// Query answers a single prompt against the indexed document.
func (e *RetrievalEngine) Query(ctx context.Context, prompt string) (string, error) {
	defer observability.ObserveStage("query", time.Now())

	vector, err := e.llm.EmbedText(ctx, prompt)
	if err != nil {
		return "", &QueryError{Message: "embedding prompt", Cause: err}
	}

	matches, err := e.store.Search(ctx, vector, e.topK)
	if err != nil {
		return "", &QueryError{Message: "searching index", Cause: err}
	}

	synthesis := prompts.Format(prompts.MustGet("synthesize_answer"), map[string]string{
		"Context":  stitchContext(matches),
		"Question": prompt,
	})

	answer, err := e.llm.GenerateContent(ctx, synthesis)
	observability.RecordOracleRequest(err)
	if err != nil {
		return "", &QueryError{Message: "generating answer", Cause: err}
	}
	return answer, nil
}

// Close releases the index and the underlying model client.
func (e *RetrievalEngine) Close() error {
	storeErr := e.store.Close()
	if err := e.llm.Close(); err != nil {
		return err
	}
	return storeErr
}

func stitchContext(matches []vectorstore.Match) string {
	parts := make([]string, 0, len(matches))
	for _, match := range matches {
		parts = append(parts, match.Text)
	}
	return strings.Join(parts, "\n\n")
}
