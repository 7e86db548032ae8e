// workflows/monitoring.go
package workflows

import (
	"context"
	"fmt"

	"github.com/inngest/inngestgo"
	"github.com/inngest/inngestgo/step"
)

// WeeklyCalculationAuditor checks how many brands are getting measured
// share-of-voice numbers versus fallbacks. A high fallback ratio means the
// answer collection or the matcher needs attention.
func (p *ScheduledProcessor) WeeklyCalculationAuditor() inngestgo.ServableFunction {
	fn, err := inngestgo.CreateFunction(
		p.client,
		inngestgo.FunctionOpts{
			ID:   "weekly-calculation-auditor",
			Name: "Audit Weekly Calculation Statuses",
		},
		inngestgo.CronTrigger("0 0 * * 0"), // Every Sunday at midnight
		func(ctx context.Context, input inngestgo.Input[any]) (any, error) {
			distribution, err := step.Run(ctx, "get-status-distribution", func(ctx context.Context) (map[string]int, error) {
				brands, err := p.repos.Brands.ListActive(ctx)
				if err != nil {
					return nil, err
				}

				statuses := make(map[string]int)
				for _, brand := range brands {
					record, err := p.repos.ShareOfVoice.LatestByBrand(ctx, brand.ID)
					if err != nil {
						return nil, err
					}
					if record == nil {
						statuses["never_calculated"]++
						continue
					}
					statuses[record.Status]++
				}
				return statuses, nil
			})
			if err != nil {
				return nil, err
			}

			var total int
			for _, count := range distribution {
				total += count
			}
			measured := distribution["measured"]

			measuredRatio := 0.0
			if total > 0 {
				measuredRatio = float64(measured) / float64(total)
			}

			return map[string]interface{}{
				"total_brands":   total,
				"distribution":   distribution,
				"measured_ratio": measuredRatio,
				"recommendation": generateStatusRecommendation(measuredRatio),
			}, nil
		},
	)

	if err != nil {
		fmt.Printf("Failed to create weekly calculation auditor function: %v\n", err)
	}

	return fn
}

func generateStatusRecommendation(measuredRatio float64) string {
	if measuredRatio >= 0.8 {
		return "Calculation health is good"
	} else if measuredRatio >= 0.5 {
		return "A sizeable share of brands are on fallback paths; review answer collection volume"
	}
	return "Most brands are falling back; check provider errors and alias coverage"
}
