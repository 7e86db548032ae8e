// internal/sov/aggregator_internal_test.go
package sov

import (
	"math"
	"testing"
)

// panickingAnalyzer simulates a sentiment backend failing mid-calculation.
type panickingAnalyzer struct{}

func (panickingAnalyzer) Polarity(string) Sentiment {
	panic("sentiment backend unavailable")
}

func TestCalculateRecoversToErrorFallback(t *testing.T) {
	agg := NewAggregator(NewExtractor(NewRecognizer("regex")), NewScorer(panickingAnalyzer{}))

	answers := []RawAnswer{
		{Text: "HubSpot is listed among the best CRM tools for small teams."},
	}
	result := agg.Calculate("HubSpot", []string{"Salesforce"}, answers, "crm")

	if result.Status != StatusFallbackError {
		t.Fatalf("Status = %q, want %q", result.Status, StatusFallbackError)
	}
	if result.Shares["HubSpot"] != 35 {
		t.Errorf("brand share = %v, want 35", result.Shares["HubSpot"])
	}
	if result.Shares["Salesforce"] != 65 {
		t.Errorf("competitor share = %v, want 65", result.Shares["Salesforce"])
	}
	if result.TotalMentions != 0 {
		t.Errorf("TotalMentions = %d, want 0", result.TotalMentions)
	}
}

func TestCapOutliers(t *testing.T) {
	mentions := []Mention{
		{Score: 1}, {Score: 1}, {Score: 1}, {Score: 1}, {Score: 100},
	}

	capOutliers(mentions)

	// Median 1, MAD 0: anything above the median is clamped to it.
	for i, mention := range mentions[:4] {
		if mention.Score != 1 {
			t.Errorf("mention %d score = %v, want 1 (unchanged)", i, mention.Score)
		}
	}
	if mentions[4].Score != 1 {
		t.Errorf("outlier score = %v, want clamped to 1", mentions[4].Score)
	}
}

func TestCapOutliersSpread(t *testing.T) {
	mentions := []Mention{
		{Score: 1}, {Score: 2}, {Score: 3}, {Score: 4}, {Score: 50},
	}

	capOutliers(mentions)

	// Median 3, deviations [2,1,0,1,47], MAD 1, threshold 6.
	want := []float64{1, 2, 3, 4, 6}
	for i, mention := range mentions {
		if math.Abs(mention.Score-want[i]) > 1e-9 {
			t.Errorf("mention %d score = %v, want %v", i, mention.Score, want[i])
		}
	}
}

func TestCapOutliersSmallSets(t *testing.T) {
	single := []Mention{{Score: 42}}
	capOutliers(single)
	if single[0].Score != 42 {
		t.Errorf("single mention score = %v, want 42 (untouched)", single[0].Score)
	}

	capOutliers(nil)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.values); got != tt.want {
				t.Errorf("median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestFallbackResultFormula(t *testing.T) {
	aggregator := NewAggregator(nil, nil)

	tests := []struct {
		name        string
		competitors []string
		wantBrand   float64
	}{
		{"no competitors", nil, 100},
		{"one competitor caps at 35", []string{"Globex"}, 35},
		{"six competitors", []string{"a", "b", "c", "d", "e", "f"}, 24},
		{"many competitors floor at 15", make([]string, 30), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := aggregator.fallbackResult("Acme", tt.competitors, StatusFallbackNoSignal)
			if result.Shares["Acme"] != tt.wantBrand {
				t.Errorf("brand share = %v, want %v", result.Shares["Acme"], tt.wantBrand)
			}
		})
	}
}
