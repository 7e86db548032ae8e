// workflows/scheduled_processor.go
package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"

	"github.com/brandlens-ai/brandlens-workflows/internal/models"
	"github.com/brandlens-ai/brandlens-workflows/internal/store"
)

type ScheduledProcessor struct {
	repos  *store.RepositoryManager
	client inngestgo.Client
}

func NewScheduledProcessor(repos *store.RepositoryManager) *ScheduledProcessor {
	return &ScheduledProcessor{
		repos: repos,
	}
}

func (p *ScheduledProcessor) SetClient(client inngestgo.Client) {
	p.client = client
}

// DailyBrandProcessor fans the analyze pipeline out to every active brand
// once a day.
func (p *ScheduledProcessor) DailyBrandProcessor() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:   "daily-brand-processor",
			Name: "Daily Brand Processor",
		},
		inngestgo.CronTrigger("0 2 * * *"), // Every day at 2 AM UTC
		func(ctx context.Context, input inngestgo.Input[any]) (any, error) {
			now := time.Now()

			// Step 1: Get all active brands
			brands, err := step.Run(ctx, "get-active-brands", func(ctx context.Context) ([]*models.Brand, error) {
				return p.repos.Brands.ListActive(ctx)
			})
			if err != nil {
				return nil, fmt.Errorf("failed to get active brands: %w", err)
			}

			if len(brands) == 0 {
				return map[string]interface{}{
					"execution_date":     now.Format("2006-01-02"),
					"total_brands_found": 0,
					"message":            "No active brands to analyze",
				}, nil
			}

			// Step 2: Trigger an idempotent analyze run per brand. If the
			// workflow fails, only sends that didn't complete are retried.
			for _, brand := range brands {
				stepName := fmt.Sprintf("trigger-analyze-%s", brand.ID.String())

				_, err := step.Run(ctx, stepName, func(ctx context.Context) (interface{}, error) {
					evt := inngestgo.Event{
						Name: "brand.analyze",
						Data: map[string]interface{}{
							"brand_id":     brand.ID.String(),
							"triggered_by": "automatic_scheduler",
						},
					}
					return p.client.Send(ctx, evt)
				})
				if err != nil {
					// Log the error but continue processing other brands
					fmt.Printf("Warning: Failed to send event for brand %s: %v\n", brand.ID.String(), err)
				}
			}

			return map[string]interface{}{
				"execution_date":     now.Format("2006-01-02"),
				"total_brands_found": len(brands),
				"message":            fmt.Sprintf("Triggered %d brand analysis pipelines", len(brands)),
			}, nil
		},
	)

	if err != nil {
		fmt.Printf("Failed to create daily brand processor function: %v\n", err)
	}

	return fn
}
