// services/analytics_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
	"github.com/brandlens-ai/brandlens-workflows/internal/store"
)

type analyticsService struct {
	cfg   *config.Config
	repos *store.RepositoryManager
}

func NewAnalyticsService(cfg *config.Config, repos *store.RepositoryManager) AnalyticsService {
	return &analyticsService{
		cfg:   cfg,
		repos: repos,
	}
}

// CalculateAnalytics derives trend metrics from the stored share-of-voice
// history for a brand: current share, change against the previous
// calculation, and the measured-vs-fallback ratio of recent records.
func (s *analyticsService) CalculateAnalytics(ctx context.Context, brandID uuid.UUID, limit int) (*models.Analytics, error) {
	fmt.Printf("[CalculateAnalytics] Calculating analytics for brand %s\n", brandID)

	if limit <= 0 {
		limit = 30
	}

	history, err := s.repos.ShareOfVoice.HistoryByBrand(ctx, brandID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load share of voice history for brand %s: %w", brandID, err)
	}

	analytics := &models.Analytics{
		Metrics:   make(map[string]float64),
		Timestamp: time.Now().UTC(),
	}

	if len(history) == 0 {
		analytics.Insights = append(analytics.Insights, "No share of voice calculations recorded yet.")
		return analytics, nil
	}

	latest := history[0]
	analytics.Metrics["brand_share"] = latest.BrandShare
	analytics.Metrics["ai_visibility_score"] = latest.Visibility
	analytics.Metrics["record_count"] = float64(len(history))

	measured := 0
	shareSum := 0.0
	for _, record := range history {
		if record.Status == "measured" {
			measured++
		}
		shareSum += record.BrandShare
	}
	analytics.Metrics["measured_ratio"] = float64(measured) / float64(len(history))
	analytics.Metrics["avg_brand_share"] = shareSum / float64(len(history))

	if len(history) > 1 {
		previous := history[1]
		change := latest.BrandShare - previous.BrandShare
		analytics.Metrics["share_change"] = change

		switch {
		case change > 1:
			analytics.Insights = append(analytics.Insights,
				fmt.Sprintf("Share of voice rose %.2f points since the previous calculation.", change))
		case change < -1:
			analytics.Insights = append(analytics.Insights,
				fmt.Sprintf("Share of voice dropped %.2f points since the previous calculation.", -change))
		default:
			analytics.Insights = append(analytics.Insights, "Share of voice is stable.")
		}
	}

	if latest.Status != "measured" {
		analytics.Insights = append(analytics.Insights,
			fmt.Sprintf("Latest calculation used the %s path; collect more answers for a measured share.", latest.Status))
	}

	return analytics, nil
}
