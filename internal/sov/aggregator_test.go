// internal/sov/aggregator_test.go
package sov_test

import (
	"math"
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

func newTestAggregator() *sov.Aggregator {
	return sov.NewAggregator(nil, nil)
}

func shareSum(shares map[string]float64) float64 {
	sum := 0.0
	for _, share := range shares {
		sum += share
	}
	return sum
}

func TestCalculateMeasured(t *testing.T) {
	aggregator := newTestAggregator()

	brand := "HubSpot"
	competitors := []string{"Salesforce", "Zoho"}
	answers := []sov.RawAnswer{
		{Text: "HubSpot is a reliable CRM for sales teams and pipeline tracking. Salesforce also offers a popular CRM with strong automation."},
		{Text: "Zoho provides an affordable CRM for managing leads and contacts."},
	}

	result := aggregator.Calculate(brand, competitors, answers, "crm")

	if result.Status != sov.StatusMeasured {
		t.Fatalf("Status = %q, want %q", result.Status, sov.StatusMeasured)
	}
	if sum := shareSum(result.Shares); math.Abs(sum-100) > 0.1 {
		t.Errorf("shares sum to %v, want 100 +/- 0.1", sum)
	}
	for _, b := range append([]string{brand}, competitors...) {
		share, ok := result.Shares[b]
		if !ok {
			t.Errorf("no share entry for %q", b)
			continue
		}
		if share <= 0 || share > 100 {
			t.Errorf("share for %q = %v, want in (0, 100]", b, share)
		}
		if result.MentionCounts[b] < 1 {
			t.Errorf("mention count for %q = %d, want >= 1", b, result.MentionCounts[b])
		}
	}
	if result.BrandShare != result.Shares[brand] {
		t.Errorf("BrandShare = %v, want %v", result.BrandShare, result.Shares[brand])
	}
	if result.AIVisibilityScore != result.BrandShare {
		t.Errorf("AIVisibilityScore = %v, want %v", result.AIVisibilityScore, result.BrandShare)
	}
	countSum := 0
	for _, count := range result.MentionCounts {
		countSum += count
	}
	if result.TotalMentions != countSum {
		t.Errorf("TotalMentions = %d, want sum of counts %d", result.TotalMentions, countSum)
	}
	if result.Breakdown.BySentiment == nil || result.Breakdown.ByContextType == nil {
		t.Error("measured result should carry a populated breakdown")
	}
}

func TestCalculateDeterministic(t *testing.T) {
	aggregator := newTestAggregator()

	brand := "HubSpot"
	competitors := []string{"Salesforce", "Zoho"}
	answers := []sov.RawAnswer{
		{Text: "HubSpot and Salesforce both offer CRM automation for sales pipeline work, while Zoho targets smaller customer teams."},
	}

	first := aggregator.Calculate(brand, competitors, answers, "crm")
	second := aggregator.Calculate(brand, competitors, answers, "crm")

	if first.Status != second.Status {
		t.Fatalf("statuses differ across runs: %q vs %q", first.Status, second.Status)
	}
	if len(first.Shares) != len(second.Shares) {
		t.Fatalf("share map sizes differ: %d vs %d", len(first.Shares), len(second.Shares))
	}
	for b, share := range first.Shares {
		if second.Shares[b] != share {
			t.Errorf("share for %q differs across runs: %v vs %v", b, share, second.Shares[b])
		}
	}
}

func TestCalculateOccurrenceFallback(t *testing.T) {
	aggregator := newTestAggregator()

	// Two-letter names never survive entity validation, so the pipeline
	// produces no scored mentions and has to fall back to literal counts.
	brand := "HP"
	competitors := []string{"GM"}
	answers := []sov.RawAnswer{
		{Text: "Many offices buy HP printers, and GM builds trucks. HP also sells laptops."},
	}

	result := aggregator.Calculate(brand, competitors, answers, "hardware")

	if result.Status != sov.StatusFallbackCounts {
		t.Fatalf("Status = %q, want %q", result.Status, sov.StatusFallbackCounts)
	}
	if result.MentionCounts["HP"] != 2 || result.MentionCounts["GM"] != 1 {
		t.Errorf("MentionCounts = %v, want HP:2 GM:1", result.MentionCounts)
	}
	if result.Shares["HP"] != 66.67 {
		t.Errorf("share for HP = %v, want 66.67", result.Shares["HP"])
	}
	if result.Shares["GM"] != 33.33 {
		t.Errorf("share for GM = %v, want 33.33", result.Shares["GM"])
	}
	if result.TotalMentions != 3 {
		t.Errorf("TotalMentions = %d, want 3", result.TotalMentions)
	}
}

func TestCalculateNoSignalFallback(t *testing.T) {
	aggregator := newTestAggregator()

	tests := []struct {
		name        string
		competitors []string
		wantBrand   float64
		wantEach    float64
	}{
		{
			name:        "two competitors",
			competitors: []string{"Globex", "Initech"},
			wantBrand:   35,
			wantEach:    32.5,
		},
		{
			name:        "three competitors",
			competitors: []string{"Globex", "Initech", "Umbrella"},
			wantBrand:   35,
			wantEach:    21.67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := aggregator.Calculate("Acme", tt.competitors, nil, "crm")

			if result.Status != sov.StatusFallbackNoSignal {
				t.Fatalf("Status = %q, want %q", result.Status, sov.StatusFallbackNoSignal)
			}
			if result.Shares["Acme"] != tt.wantBrand {
				t.Errorf("brand share = %v, want %v", result.Shares["Acme"], tt.wantBrand)
			}
			for _, competitor := range tt.competitors {
				if result.Shares[competitor] != tt.wantEach {
					t.Errorf("share for %q = %v, want %v", competitor, result.Shares[competitor], tt.wantEach)
				}
				if result.Shares["Acme"] <= result.Shares[competitor] {
					t.Errorf("brand share %v not greater than %q share %v",
						result.Shares["Acme"], competitor, result.Shares[competitor])
				}
			}
			if result.TotalMentions != 0 {
				t.Errorf("TotalMentions = %d, want 0", result.TotalMentions)
			}
		})
	}
}

func TestCalculateNoSignalIgnoresUnrelatedText(t *testing.T) {
	aggregator := newTestAggregator()

	answers := []sov.RawAnswer{
		{Text: "Nothing relevant appears in this answer at all."},
	}
	result := aggregator.Calculate("Acme", []string{"Globex"}, answers, "crm")

	if result.Status != sov.StatusFallbackNoSignal {
		t.Fatalf("Status = %q, want %q", result.Status, sov.StatusFallbackNoSignal)
	}
}

func TestCalculateNoCompetitors(t *testing.T) {
	aggregator := newTestAggregator()

	result := aggregator.Calculate("Acme", nil, nil, "crm")

	if result.Status != sov.StatusFallbackNoSignal {
		t.Fatalf("Status = %q, want %q", result.Status, sov.StatusFallbackNoSignal)
	}
	if result.Shares["Acme"] != 100 {
		t.Errorf("brand share = %v, want 100", result.Shares["Acme"])
	}
}
