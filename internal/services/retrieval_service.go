package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"tripmate/internal/models/db_models"
	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/repositories"
	"tripmate/pkg/utils"
)

const (
	ingestChunkSize        = 1000
	ingestChunkOverlap     = 200
	defaultRetrievalK      = 3
	minRetrievalSimilarity = 0.3
)

type RetrievalServiceInterface interface {
	RetrieveContext(ctx context.Context, query string, k int) ([]response_models.RetrievedDocument, error)
	Ingest(ctx context.Context, req request_models.IngestRequest) (int, error)
	Enabled() bool
}

type RetrievalService struct {
	llm      utils.LLMClientInterface
	docRepo  repositories.IDocumentRepository
	splitter textsplitter.TextSplitter
}

// NewRetrievalService works with a nil model or repository; every call then
// reports ErrRetrievalDisabled.
func NewRetrievalService(llm utils.LLMClientInterface, docRepo repositories.IDocumentRepository) RetrievalServiceInterface {
	return &RetrievalService{
		llm:     llm,
		docRepo: docRepo,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(ingestChunkSize),
			textsplitter.WithChunkOverlap(ingestChunkOverlap),
		),
	}
}

func (r *RetrievalService) Enabled() bool {
	return r.llm != nil && r.docRepo != nil
}

func (r *RetrievalService) RetrieveContext(ctx context.Context, query string, k int) ([]response_models.RetrievedDocument, error) {
	if !r.Enabled() {
		return nil, utils.ErrRetrievalDisabled
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", utils.ErrInvalidInput)
	}
	if k <= 0 {
		k = defaultRetrievalK
	}

	vector, err := r.llm.GetEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := r.docRepo.SearchByVector(ctx, vector, k, minRetrievalSimilarity)
	if err != nil {
		log.Printf("Error searching documents: %v", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	docs := make([]response_models.RetrievedDocument, 0, len(matches))
	for _, m := range matches {
		docs = append(docs, response_models.RetrievedDocument{
			ID:         m.ID.String(),
			Source:     m.Source,
			Content:    m.Content,
			Tags:       append([]string{}, m.Tags...),
			Similarity: m.Similarity,
		})
	}
	return docs, nil
}

// Ingest splits the text into overlapping chunks, embeds each one and stores
// them together. It returns the number of stored chunks.
func (r *RetrievalService) Ingest(ctx context.Context, req request_models.IngestRequest) (int, error) {
	if !r.Enabled() {
		return 0, utils.ErrRetrievalDisabled
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return 0, fmt.Errorf("%w: text is required", utils.ErrInvalidInput)
	}

	chunks, err := r.splitter.SplitText(text)
	if err != nil {
		return 0, fmt.Errorf("%w: split text: %v", utils.ErrInvalidInput, err)
	}

	docs := make([]db_models.TravelDocument, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := r.llm.GetEmbedding(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		docs = append(docs, db_models.TravelDocument{
			Source:     req.Source,
			ChunkIndex: i,
			Content:    chunk,
			Tags:       req.Tags,
			Embedding:  vector,
		})
	}

	if err := r.docRepo.CreateDocuments(ctx, docs); err != nil {
		log.Printf("Error storing %d chunks from %q: %v", len(docs), req.Source, err)
		return 0, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	log.Printf("Ingested %d chunks from %q", len(docs), req.Source)
	return len(docs), nil
}
