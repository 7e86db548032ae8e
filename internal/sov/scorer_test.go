package sov_test

import (
	"math"
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

func TestClassifyContext(t *testing.T) {
	s := sov.NewScorer(sov.NewLexiconAnalyzer())

	tests := []struct {
		name     string
		text     string
		expected sov.ContextType
	}{
		{"recommendation via best", "What are the best CRM platforms?", sov.ContextRecommendation},
		{"title line", "Top CRM Platforms", sov.ContextTitle},
		{"markdown heading", "## Pricing Overview", sov.ContextHeading},
		{"all caps heading", "FEATURES AND PRICING DETAILS FOR ALL MAJOR US VENDORS THIS YEAR", sov.ContextHeading},
		{"list item dash", "- HubSpot offers a free tier for small teams.", sov.ContextListItem},
		{"list item numbered", "1. Salesforce leads the enterprise market.", sov.ContextListItem},
		{"comparison", "HubSpot versus Salesforce in terms of pricing structure and checkout flows.", sov.ContextComparison},
		{"review", "My experience with the rating system was mixed overall, honestly speaking and in retrospect.", sov.ContextReview},
		{"normal sentence", "The company was founded a decade ago in Austin and it employs many people there.", sov.ContextNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.ClassifyContext(tt.text)
			if result != tt.expected {
				t.Errorf("ClassifyContext(%q) = %s, want %s", tt.text, result, tt.expected)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	s := sov.NewScorer(sov.NewLexiconAnalyzer())

	tests := []struct {
		name     string
		entity   string
		context  string
		expected float64
	}{
		{
			name:     "base confidence",
			entity:   "Acme",
			context:  "Acme makes widgets in a factory somewhere far away from here.",
			expected: 0.5,
		},
		{
			name:     "long entity with important keyword and repeat",
			entity:   "Salesforce",
			context:  "Salesforce is the best CRM choice. Salesforce leads enterprise deals.",
			expected: 0.5 + 0.1 + 0.2 + 0.05,
		},
		{
			name:     "company suffix boost",
			entity:   "Acme Corp",
			context:  "Acme Corp shipped a new product line in spring.",
			expected: 0.5 + 0.1 + 0.1,
		},
		{
			name:     "domain entity boost",
			entity:   "acme.io",
			context:  "many developers deploy on acme.io every day of the week.",
			expected: 0.5 + 0.15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Confidence(tt.entity, tt.context)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Confidence(%q) = %v, want %v", tt.entity, result, tt.expected)
			}
		})
	}
}

func TestConfidenceCapped(t *testing.T) {
	s := sov.NewScorer(sov.NewLexiconAnalyzer())

	// Everything boosts at once: must not exceed 1.0.
	context := "trusted best acme-widgets.io acme-widgets.io acme-widgets.io acme-widgets.io acme-widgets.io acme-widgets.io"
	if c := s.Confidence("acme-widgets.io", context); c > 1.0 {
		t.Errorf("Confidence = %v, want <= 1.0", c)
	}
}

func TestScoreComposition(t *testing.T) {
	s := sov.NewScorer(sov.NewLexiconAnalyzer())

	scored := s.Score(sov.Occurrence{
		Entity:     "HubSpot",
		Context:    "HubSpot is reliable and trusted by many teams nationwide today.",
		TextWeight: 1.0,
	})

	if scored.Sentiment != sov.SentimentPositive {
		t.Errorf("sentiment = %s, want positive", scored.Sentiment)
	}
	if scored.ContextType != sov.ContextNormal {
		t.Errorf("context type = %s, want normal", scored.ContextType)
	}

	// textWeight 1.0 × contextWeight 1.0 × sentiment 1.2 × confidence 0.7
	expected := 1.0 * 1.0 * 1.2 * 0.7
	if math.Abs(scored.Score-expected) > 1e-9 {
		t.Errorf("score = %v, want %v", scored.Score, expected)
	}
}

func TestScoreFirstParagraph(t *testing.T) {
	s := sov.NewScorer(sov.NewLexiconAnalyzer())

	scored := s.Score(sov.Occurrence{
		Entity:         "Acme",
		Context:        "acme helps businesses process their paperwork without any fuss at all.",
		TextWeight:     1.0,
		FirstParagraph: true,
	})

	if scored.ContextType != sov.ContextFirstParagraph {
		t.Errorf("context type = %s, want %s", scored.ContextType, sov.ContextFirstParagraph)
	}
}

func TestScoreDefaultsZeroTextWeight(t *testing.T) {
	s := sov.NewScorer(sov.NewLexiconAnalyzer())

	scored := s.Score(sov.Occurrence{
		Entity:  "Acme",
		Context: "acme ships boxes to customers around the country every single week.",
	})
	if scored.Score <= 0 {
		t.Errorf("score = %v, want > 0 even with zero text weight", scored.Score)
	}
}
