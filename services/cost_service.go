// services/cost_service.go
package services

import "strings"

type costService struct{}

func NewCostService() CostService {
	return &costService{}
}

type modelPricing struct {
	input  float64
	output float64
}

// tokenPricing is USD per 1M tokens for the models this service calls: the
// answer matrix (gpt-4.1, claude, sonar), the classification and prompt
// generation calls (gpt-4.1-mini), and the sonar-pro upgrade path.
var tokenPricing = map[string]modelPricing{
	"gpt-4.1":                  {input: 3.00, output: 12.00},
	"gpt-4.1-mini":             {input: 0.80, output: 3.20},
	"claude-sonnet-4-20250514": {input: 3.00, output: 15.00},
	"sonar":                    {input: 1.00, output: 1.00},
	"sonar-pro":                {input: 3.00, output: 15.00},
}

// Unknown models are priced as gpt-4.1, the most expensive model in the
// default matrix.
const defaultPricingModel = "gpt-4.1"

// webSearchPricing is USD per 1000 web searches by provider.
var webSearchPricing = map[string]float64{
	"openai":     35.00,
	"anthropic":  10.00,
	"perplexity": 8.00,
}

func (s *costService) CalculateCost(provider string, model string, inputTokens int, outputTokens int, websearch bool) float64 {
	pricing, ok := tokenPricing[model]
	if !ok {
		pricing = tokenPricing[defaultPricingModel]
	}

	cost := (float64(inputTokens)/1_000_000.0)*pricing.input +
		(float64(outputTokens)/1_000_000.0)*pricing.output

	if websearch {
		if searchCost, ok := webSearchPricing[s.getProviderKey(provider)]; ok {
			cost += searchCost / 1000.0
		}
	}

	return cost
}

// getProviderKey maps a provider or model name onto the web search pricing
// table.
func (s *costService) getProviderKey(provider string) string {
	provider = strings.ToLower(provider)
	switch {
	case strings.Contains(provider, "anthropic") || strings.Contains(provider, "claude"):
		return "anthropic"
	case strings.Contains(provider, "perplexity") || strings.Contains(provider, "sonar"):
		return "perplexity"
	default:
		return "openai"
	}
}
