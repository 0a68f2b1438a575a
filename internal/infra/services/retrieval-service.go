package services

import (
	"context"
	"fmt"
	"regexp"
	"techbot/internal/domain/apperrors"
	"techbot/internal/domain/entities"
	"techbot/internal/domain/interfaces/repository"
	repocontants "techbot/internal/domain/interfaces/repository/contants"
	Iservices "techbot/internal/domain/interfaces/services"
	"techbot/internal/infra/logger"
	"techbot/internal/infra/provider"

	"github.com/sirupsen/logrus"
)

// sensitivePattern drops retrieved documents that look poisoned or
// confidential before they can reach the prompt.
var sensitivePattern = regexp.MustCompile(`(?i)(secret|password|internal|ignore|instruction|reveal|prompt)`)

type RetrievalService struct {
	Logger        *logger.Logger
	Cache         Iservices.ICacheCoordinator
	Provider      provider.IGenerationProvider
	DocRepository repository.DocRepository
	TopK          int
	CandidatePool int
}

func NewRetrievalService(logger *logger.Logger, cache Iservices.ICacheCoordinator, generationProvider provider.IGenerationProvider, docRepository repository.DocRepository, topK int, candidatePool int) *RetrievalService {
	if topK <= 0 {
		topK = 5
	}
	if candidatePool <= 0 {
		candidatePool = 50
	}
	return &RetrievalService{
		Logger:        logger,
		Cache:         cache,
		Provider:      generationProvider,
		DocRepository: docRepository,
		TopK:          topK,
		CandidatePool: candidatePool,
	}
}

// Retrieve embeds the query (through the embedding cache), searches the
// vector index and filters out sensitive matches. An empty result set is
// valid; a store failure is not.
func (rs *RetrievalService) Retrieve(ctx context.Context, query string, queryHash string) ([]entities.RetrievalResult, error) {
	vector, ok := rs.Cache.EmbeddingLookup(ctx, queryHash)
	if !ok {
		fresh, err := rs.Provider.EmbedText(ctx, query)
		if err != nil {
			rs.Logger.Error(fmt.Sprintf("Failed to embed query: %s", err.Error()))
			return nil, fmt.Errorf("%w: embedding failed: %v", apperrors.ErrUpstreamUnavailable, err)
		}
		vector = fresh
		rs.Cache.EmbeddingStore(queryHash, vector)
	}

	results, err := rs.DocRepository.VectorSearch(ctx, repocontants.DOC_COLLECTION, vector, rs.TopK, rs.CandidatePool)
	if err != nil {
		rs.Logger.Error(fmt.Sprintf("Vector search failed: %s", err.Error()))
		return nil, fmt.Errorf("%w: vector search failed: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	filtered := make([]entities.RetrievalResult, 0, len(results))
	for _, result := range results {
		if sensitivePattern.MatchString(result.Content) {
			rs.Logger.Warn("Dropping sensitive document from retrieval results", logrus.Fields{"score": result.Score})
			continue
		}
		filtered = append(filtered, result)
	}

	return filtered, nil
}
