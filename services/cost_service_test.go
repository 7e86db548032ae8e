// services/cost_service_test.go
package services

import (
	"math"
	"testing"
)

func TestCalculateCost(t *testing.T) {
	s := NewCostService()

	tests := []struct {
		name         string
		provider     string
		model        string
		inputTokens  int
		outputTokens int
		websearch    bool
		want         float64
	}{
		{
			name:         "known model token pricing",
			provider:     "openai",
			model:        "gpt-4.1",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			want:         15.00,
		},
		{
			name:         "perplexity sonar",
			provider:     "perplexity",
			model:        "sonar",
			inputTokens:  500_000,
			outputTokens: 500_000,
			want:         1.00,
		},
		{
			name:         "classification model pricing",
			provider:     "openai",
			model:        "gpt-4.1-mini",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			want:         4.00,
		},
		{
			name:         "sonar-pro pricing",
			provider:     "perplexity",
			model:        "sonar-pro",
			inputTokens:  1_000_000,
			outputTokens: 1_000_000,
			want:         18.00,
		},
		{
			name:         "unknown model defaults to gpt-4.1 pricing",
			provider:     "openai",
			model:        "mystery-model",
			inputTokens:  1_000_000,
			outputTokens: 0,
			want:         3.00,
		},
		{
			name:         "websearch adds per-search surcharge",
			provider:     "openai",
			model:        "gpt-4.1",
			inputTokens:  0,
			outputTokens: 0,
			websearch:    true,
			want:         0.035,
		},
		{
			name:         "anthropic websearch surcharge",
			provider:     "anthropic",
			model:        "claude-sonnet-4-20250514",
			inputTokens:  0,
			outputTokens: 0,
			websearch:    true,
			want:         0.010,
		},
		{
			name:         "zero tokens no websearch",
			provider:     "openai",
			model:        "gpt-4.1",
			inputTokens:  0,
			outputTokens: 0,
			want:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.CalculateCost(tt.provider, tt.model, tt.inputTokens, tt.outputTokens, tt.websearch)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CalculateCost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetProviderKey(t *testing.T) {
	s := &costService{}

	tests := []struct {
		provider string
		want     string
	}{
		{"openai", "openai"},
		{"gpt-4.1", "openai"},
		{"Anthropic", "anthropic"},
		{"claude-sonnet-4-20250514", "anthropic"},
		{"perplexity", "perplexity"},
		{"sonar-pro", "perplexity"},
		{"something-else", "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			if got := s.getProviderKey(tt.provider); got != tt.want {
				t.Errorf("getProviderKey(%q) = %q, want %q", tt.provider, got, tt.want)
			}
		})
	}
}
