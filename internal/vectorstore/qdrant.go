package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/qdrant/go-client/qdrant"
)

// QdrantStore backs a resume index with a dedicated qdrant collection. The
// collection is created lazily on first upsert (the vector size is only known
// once embeddings exist) and dropped again on Close, keeping the
// session-scoped lifecycle of the in-memory store.
type QdrantStore struct {
	client     *qdrant.Client
	collection string

	mu      sync.Mutex
	ensured bool
}

// NewQdrantStore connects to qdrant at urlStr and scopes the store to the
// given collection name. The URL scheme selects TLS; the port defaults to
// qdrant's gRPC port 6334 when omitted.
func NewQdrantStore(urlStr, apiKey, collection string) (*QdrantStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid qdrant URL: %w", err)
	}

	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &QdrantStore{
		client:     client,
		collection: collection,
	}, nil
}

// Upsert writes documents into the collection, creating it on first use.
func (s *QdrantStore) Upsert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	if err := s.ensureCollection(ctx, uint64(len(docs[0].Vector))); err != nil {
		return err
	}

	points := make([]*qdrant.PointStruct, 0, len(docs))
	for _, doc := range docs {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(doc.ID),
			Vectors: qdrant.NewVectors(doc.Vector...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"text": doc.Text,
			}),
		})
	}

	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// Search returns up to limit documents nearest to vector.
func (s *QdrantStore) Search(ctx context.Context, vector []float32, limit int) ([]Match, error) {
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search collection %s: %w", s.collection, err)
	}

	matches := make([]Match, 0, len(points))
	for _, point := range points {
		match := Match{Score: point.Score}
		if id := point.GetId(); id != nil {
			match.ID = id.GetUuid()
		}
		if text, ok := point.GetPayload()["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				match.Text = val.StringValue
			}
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// Close drops the session's collection and releases the connection.
func (s *QdrantStore) Close() error {
	ctx := context.Background()

	s.mu.Lock()
	ensured := s.ensured
	s.mu.Unlock()

	if ensured {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("failed to drop collection %s: %w", s.collection, err)
		}
	}
	return s.client.Close()
}

func (s *QdrantStore) ensureCollection(ctx context.Context, vectorSize uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensured {
		return nil
	}

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", s.collection, err)
	}

	if !exists {
		err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
		}
	}

	s.ensured = true
	return nil
}
