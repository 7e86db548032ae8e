// services/index_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
)

const (
	answerEmbeddingModel     = "text-embedding-3-small"
	answerVectorCollection   = "answer_embeddings"
	answerDocumentCollection = "generated_answers"
	maxEmbeddingInputLength  = 8000
)

type indexService struct {
	qdrantClient    *qdrant.Client
	typesenseClient *typesense.Client
	embeddings      EmbeddingProvider
	cfg             *config.Config
}

// NewIndexService creates the service that embeds and indexes answer runs
// for later retrieval: vectors in Qdrant, full text in Typesense.
func NewIndexService(
	qdrantClient *qdrant.Client,
	typesenseClient *typesense.Client,
	embeddings EmbeddingProvider,
	cfg *config.Config,
) IndexService {
	return &indexService{
		qdrantClient:    qdrantClient,
		typesenseClient: typesenseClient,
		embeddings:      embeddings,
		cfg:             cfg,
	}
}

// IndexAnswers embeds every successful run and upserts both stores. Returns
// the number of answers indexed.
func (s *indexService) IndexAnswers(ctx context.Context, brand *models.Brand, runs []*models.AnswerRun) (int, error) {
	fmt.Printf("[IndexAnswers] Indexing answers for brand %s (%d runs)\n", brand.Name, len(runs))

	var texts []string
	var indexed []*models.AnswerRun
	for _, run := range runs {
		if run.Error != "" || run.Response == "" {
			continue
		}
		text := run.Response
		if len(text) > maxEmbeddingInputLength {
			text = text[:maxEmbeddingInputLength]
		}
		texts = append(texts, text)
		indexed = append(indexed, run)
	}
	if len(texts) == 0 {
		return 0, nil
	}

	vectors, err := s.embeddings.CreateEmbedding(ctx, texts, answerEmbeddingModel)
	if err != nil {
		return 0, fmt.Errorf("failed to embed answers for brand %s: %w", brand.Name, err)
	}

	points := make([]*qdrant.PointStruct, len(indexed))
	docs := make([]interface{}, len(indexed))
	for i, run := range indexed {
		id := uuid.New().String()
		payload := qdrant.NewValueMap(map[string]any{
			"text":      texts[i],
			"brand_id":  brand.ID.String(),
			"prompt_id": run.PromptID,
			"model":     run.Model,
		})
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(id),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: payload,
		}
		docs[i] = map[string]interface{}{
			"id":         id,
			"content":    run.Response,
			"brand_id":   brand.ID.String(),
			"prompt_id":  run.PromptID,
			"model":      run.Model,
			"created_at": run.Timestamp.Unix(),
		}
	}

	waitUpsert := true
	_, err = s.qdrantClient.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: answerVectorCollection,
		Points:         points,
		Wait:           &waitUpsert,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert answer vectors: %w", err)
	}

	action := "upsert"
	_, err = s.typesenseClient.Collection(answerDocumentCollection).Documents().Import(ctx, docs, &api.ImportDocumentsParams{Action: &action})
	if err != nil {
		return 0, fmt.Errorf("failed to index answer documents: %w", err)
	}

	fmt.Printf("[IndexAnswers] Indexed %d answers for brand %s\n", len(indexed), brand.Name)
	return len(indexed), nil
}
