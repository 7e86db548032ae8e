// services/sov_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
	"github.com/brandlens-ai/brandlens-workflows/internal/store"
)

type sovService struct {
	cfg        *config.Config
	repos      *store.RepositoryManager
	aggregator *sov.Aggregator
}

// NewSOVService wires the aggregator with the analyzer variants named in
// configuration.
func NewSOVService(cfg *config.Config, repos *store.RepositoryManager) SOVService {
	extractor := sov.NewExtractor(sov.NewRecognizer(cfg.SOV.Recognizer))
	scorer := sov.NewScorer(sov.NewSentimentAnalyzer(cfg.SOV.Sentiment))

	return &sovService{
		cfg:        cfg,
		repos:      repos,
		aggregator: sov.NewAggregator(extractor, scorer),
	}
}

// CalculateForBrand loads the brand and its recent answers, runs the
// share-of-voice calculation, and persists the result.
func (s *sovService) CalculateForBrand(ctx context.Context, brandID uuid.UUID, window time.Duration) (*models.ShareOfVoiceRecord, error) {
	fmt.Printf("[CalculateForBrand] Calculating share of voice for brand %s\n", brandID)

	brand, err := s.repos.Brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to load brand %s: %w", brandID, err)
	}
	if brand == nil {
		return nil, fmt.Errorf("brand %s not found", brandID)
	}

	cutoff := time.Now().UTC().Add(-window)
	responses, err := s.repos.AnswerRuns.ResponsesSince(ctx, brandID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for brand %s: %w", brandID, err)
	}

	answers := make([]sov.RawAnswer, 0, len(responses))
	for _, response := range responses {
		answers = append(answers, sov.RawAnswer{Text: response})
	}

	result := s.CalculateFromAnswers(brand, answers)

	record := models.NewShareOfVoiceRecord(brandID, brand.Category, len(answers), result)
	if err := s.repos.ShareOfVoice.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist share of voice for brand %s: %w", brand.Name, err)
	}

	fmt.Printf("[CalculateForBrand] Brand %s share of voice: %.2f%% (%s) over %d answers\n",
		brand.Name, result.BrandShare, result.Status, len(answers))
	return record, nil
}

// CalculateFromAnswers runs the calculation without touching storage.
func (s *sovService) CalculateFromAnswers(brand *models.Brand, answers []sov.RawAnswer) *sov.Result {
	return s.aggregator.Calculate(brand.Name, brand.Competitors, answers, brand.Category)
}

func (s *sovService) LatestForBrand(ctx context.Context, brandID uuid.UUID) (*models.ShareOfVoiceRecord, error) {
	return s.repos.ShareOfVoice.LatestByBrand(ctx, brandID)
}
