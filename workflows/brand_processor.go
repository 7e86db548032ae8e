// workflows/brand_processor.go
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/brandlens-ai/brandlens-workflows/internal/config"
	"github.com/brandlens-ai/brandlens-workflows/internal/models"
	"github.com/brandlens-ai/brandlens-workflows/internal/store"
	"github.com/brandlens-ai/brandlens-workflows/services"
)

const (
	promptCountPerBrand = 10
	sovWindow           = 7 * 24 * time.Hour
)

type BrandProcessor struct {
	repos            *store.RepositoryManager
	categoryService  services.CategoryService
	promptService    services.PromptService
	answerRunner     services.AnswerRunnerService
	sovService       services.SOVService
	indexService     services.IndexService
	analyticsService services.AnalyticsService
	mentionAudit     services.MentionAuditService
	client           inngestgo.Client
	cfg              *config.Config
}

func NewBrandProcessor(
	repos *store.RepositoryManager,
	categoryService services.CategoryService,
	promptService services.PromptService,
	answerRunner services.AnswerRunnerService,
	sovService services.SOVService,
	indexService services.IndexService,
	analyticsService services.AnalyticsService,
	mentionAudit services.MentionAuditService,
	cfg *config.Config,
) *BrandProcessor {
	return &BrandProcessor{
		repos:            repos,
		categoryService:  categoryService,
		promptService:    promptService,
		answerRunner:     answerRunner,
		sovService:       sovService,
		indexService:     indexService,
		analyticsService: analyticsService,
		mentionAudit:     mentionAudit,
		cfg:              cfg,
	}
}

func (p *BrandProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

// AnalyzeBrand is the full collection-and-measurement pipeline for a brand:
// generate prompts, run the answer matrix, index the answers, calculate
// share of voice, and derive analytics.
func (p *BrandProcessor) AnalyzeBrand() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "analyze-brand",
			Name:    "Analyze Brand - Share of Voice Pipeline",
			Retries: inngestgo.IntPtr(3),
		},
		inngestgo.EventTrigger("brand.analyze", nil),
		func(ctx context.Context, input inngestgo.Input[BrandAnalyzeEvent]) (any, error) {
			brandID, err := uuid.Parse(input.Event.Data.BrandID)
			if err != nil {
				return nil, fmt.Errorf("invalid brand ID %q: %w", input.Event.Data.BrandID, err)
			}
			fmt.Printf("[AnalyzeBrand] Starting share of voice pipeline for brand: %s\n", brandID)

			// Step 1: Load the brand and its competitor set
			brand, err := step.Run(ctx, "load-brand", func(ctx context.Context) (*models.Brand, error) {
				brand, err := p.repos.Brands.GetByID(ctx, brandID)
				if err != nil {
					return nil, fmt.Errorf("failed to load brand: %w", err)
				}
				if brand == nil {
					return nil, fmt.Errorf("brand %s not found", brandID)
				}
				fmt.Printf("[AnalyzeBrand] Loaded brand %s (category %s, %d competitors)\n",
					brand.Name, brand.Category, len(brand.Competitors))
				return brand, nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 'load-brand' failed: %w", err)
			}

			// Step 2: Classify uncategorized brands so prompt generation and
			// topic relevance have a real category to work with
			if brand.Category == "" || brand.Category == "other" {
				category, err := step.Run(ctx, "classify-brand", func(ctx context.Context) (string, error) {
					result, err := p.categoryService.ClassifyBrand(ctx, brand.Name, brand.Domain, "")
					if err != nil {
						return "", fmt.Errorf("failed to classify brand: %w", err)
					}
					if err := p.repos.Brands.UpdateCategory(ctx, brandID, result.Category); err != nil {
						return "", err
					}
					fmt.Printf("[AnalyzeBrand] Classified brand %s as %s (confidence %.2f)\n",
						brand.Name, result.Category, result.Confidence)
					return result.Category, nil
				})
				if err != nil {
					return nil, fmt.Errorf("step 'classify-brand' failed: %w", err)
				}
				brand.Category = category
			}

			// Step 3: Generate the prompt set
			prompts, err := step.Run(ctx, "generate-prompts", func(ctx context.Context) ([]*models.Prompt, error) {
				return p.promptService.GeneratePrompts(ctx, brand, promptCountPerBrand)
			})
			if err != nil {
				return nil, fmt.Errorf("step 'generate-prompts' failed: %w", err)
			}

			// Step 4: Execute the answer matrix and persist runs
			runs, err := step.Run(ctx, "run-answer-matrix", func(ctx context.Context) ([]*models.AnswerRun, error) {
				return p.answerRunner.RunPromptMatrix(ctx, brand, prompts)
			})
			if err != nil {
				return nil, fmt.Errorf("step 'run-answer-matrix' failed: %w", err)
			}

			// Step 5: Index the answers for retrieval
			indexed, err := step.Run(ctx, "index-answers", func(ctx context.Context) (int, error) {
				return p.indexService.IndexAnswers(ctx, brand, runs)
			})
			if err != nil {
				return nil, fmt.Errorf("step 'index-answers' failed: %w", err)
			}

			// Step 6: Calculate and persist share of voice
			record, err := step.Run(ctx, "calculate-share-of-voice", func(ctx context.Context) (*models.ShareOfVoiceRecord, error) {
				return p.sovService.CalculateForBrand(ctx, brandID, sovWindow)
			})
			if err != nil {
				return nil, fmt.Errorf("step 'calculate-share-of-voice' failed: %w", err)
			}

			// Step 7: Derive trend analytics from the stored history
			analytics, err := step.Run(ctx, "generate-analytics", func(ctx context.Context) (*models.Analytics, error) {
				return p.analyticsService.CalculateAnalytics(ctx, brandID, 30)
			})
			if err != nil {
				return nil, fmt.Errorf("step 'generate-analytics' failed: %w", err)
			}

			fmt.Printf("[AnalyzeBrand] COMPLETED pipeline for brand %s: share %.2f%% (%s)\n",
				brand.Name, record.BrandShare, record.Status)

			return map[string]interface{}{
				"brand_id":        brandID.String(),
				"brand_name":      brand.Name,
				"status":          "completed",
				"prompt_count":    len(prompts),
				"run_count":       len(runs),
				"answers_indexed": indexed,
				"brand_share":     record.BrandShare,
				"sov_status":      record.Status,
				"insights":        analytics.Insights,
				"completed_at":    time.Now().UTC(),
			}, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create AnalyzeBrand function: %w", err))
	}
	return fn
}

// RecalculateShareOfVoice re-runs the calculation over already-collected
// answers, without new provider calls. Used after alias or competitor set
// changes.
func (p *BrandProcessor) RecalculateShareOfVoice() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "recalculate-share-of-voice",
			Name:    "Recalculate Share of Voice",
			Retries: inngestgo.IntPtr(2),
		},
		inngestgo.EventTrigger("brand.sov.recalculate", nil),
		func(ctx context.Context, input inngestgo.Input[BrandAnalyzeEvent]) (any, error) {
			brandID, err := uuid.Parse(input.Event.Data.BrandID)
			if err != nil {
				return nil, fmt.Errorf("invalid brand ID %q: %w", input.Event.Data.BrandID, err)
			}

			record, err := step.Run(ctx, "calculate-share-of-voice", func(ctx context.Context) (*models.ShareOfVoiceRecord, error) {
				return p.sovService.CalculateForBrand(ctx, brandID, sovWindow)
			})
			if err != nil {
				return nil, fmt.Errorf("step 'calculate-share-of-voice' failed: %w", err)
			}

			return map[string]interface{}{
				"brand_id":    brandID.String(),
				"brand_share": record.BrandShare,
				"sov_status":  record.Status,
			}, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create RecalculateShareOfVoice function: %w", err))
	}
	return fn
}

const mentionAuditSampleSize = 5

// AuditBrandMentions cross-checks the heuristic mention pipeline against an
// AI extraction over a sample of recent answers and reports the agreement
// rate. The audit never changes stored share-of-voice numbers.
func (p *BrandProcessor) AuditBrandMentions() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:      "audit-brand-mentions",
			Name:    "Audit Brand Mentions",
			Retries: inngestgo.IntPtr(2),
		},
		inngestgo.EventTrigger("brand.mentions.audit", nil),
		func(ctx context.Context, input inngestgo.Input[BrandAnalyzeEvent]) (any, error) {
			brandID, err := uuid.Parse(input.Event.Data.BrandID)
			if err != nil {
				return nil, fmt.Errorf("invalid brand ID %q: %w", input.Event.Data.BrandID, err)
			}

			brand, err := step.Run(ctx, "load-brand", func(ctx context.Context) (*models.Brand, error) {
				brand, err := p.repos.Brands.GetByID(ctx, brandID)
				if err != nil {
					return nil, fmt.Errorf("failed to load brand: %w", err)
				}
				if brand == nil {
					return nil, fmt.Errorf("brand %s not found", brandID)
				}
				return brand, nil
			})
			if err != nil {
				return nil, fmt.Errorf("step 'load-brand' failed: %w", err)
			}

			answers, err := step.Run(ctx, "load-recent-answers", func(ctx context.Context) ([]string, error) {
				cutoff := time.Now().Add(-sovWindow)
				return p.repos.AnswerRuns.ResponsesSince(ctx, brandID, cutoff)
			})
			if err != nil {
				return nil, fmt.Errorf("step 'load-recent-answers' failed: %w", err)
			}
			if len(answers) > mentionAuditSampleSize {
				answers = answers[:mentionAuditSampleSize]
			}

			agreements := 0
			audited := 0
			totalCost := 0.0
			for i, answerText := range answers {
				result, err := step.Run(ctx, fmt.Sprintf("audit-answer-%d", i), func(ctx context.Context) (*services.MentionAuditResult, error) {
					return p.mentionAudit.AuditAnswer(ctx, brand, answerText)
				})
				if err != nil {
					fmt.Printf("[AuditBrandMentions] Audit of answer %d failed, skipping: %v\n", i, err)
					continue
				}
				audited++
				totalCost += result.Cost
				if result.HeuristicAgrees {
					agreements++
				}
			}

			agreementRate := 0.0
			if audited > 0 {
				agreementRate = float64(agreements) / float64(audited)
			}
			fmt.Printf("[AuditBrandMentions] Brand %s: %d/%d answers agree (rate %.2f)\n",
				brand.Name, agreements, audited, agreementRate)

			return map[string]interface{}{
				"brand_id":       brandID.String(),
				"answers_sent":   len(answers),
				"audited":        audited,
				"agreements":     agreements,
				"agreement_rate": agreementRate,
				"audit_cost":     totalCost,
			}, nil
		},
	)
	if err != nil {
		panic(fmt.Errorf("failed to create AuditBrandMentions function: %w", err))
	}
	return fn
}

// Event types
type BrandAnalyzeEvent struct {
	BrandID     string `json:"brand_id"`
	TriggeredBy string `json:"triggered_by"`
	UserID      string `json:"user_id,omitempty"`
}
