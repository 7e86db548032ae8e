// internal/sov/topics_test.go
package sov_test

import (
	"math"
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

func TestTopicKeywords(t *testing.T) {
	crm := sov.TopicKeywords("CRM")
	found := false
	for _, keyword := range crm {
		if keyword == "pipeline" {
			found = true
		}
	}
	if !found {
		t.Errorf("TopicKeywords(\"CRM\") = %v, expected it to contain \"pipeline\"", crm)
	}

	generic := sov.TopicKeywords("underwater-basket-weaving")
	found = false
	for _, keyword := range generic {
		if keyword == "software" {
			found = true
		}
	}
	if !found {
		t.Errorf("TopicKeywords for unknown topic = %v, expected the generic list", generic)
	}
}

func TestTopicRelevance(t *testing.T) {
	crm := sov.TopicKeywords("crm")

	tests := []struct {
		name     string
		context  string
		keywords []string
		want     float64
	}{
		{
			name:     "strong overlap",
			context:  "Our CRM tracks sales pipeline and leads for every customer.",
			keywords: crm,
			want:     5.0 / 9.0,
		},
		{
			name:     "zero overlap floors at 0.2",
			context:  "The weather was pleasant for most of the afternoon.",
			keywords: crm,
			want:     0.2,
		},
		{
			name:     "weak overlap clamped up to 0.2",
			context:  "The sales figures improved slightly this quarter.",
			keywords: crm,
			want:     0.2,
		},
		{
			name:     "empty keyword list",
			context:  "Anything at all.",
			keywords: nil,
			want:     0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sov.TopicRelevance(tt.context, tt.keywords)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TopicRelevance = %v, want %v", got, tt.want)
			}
		})
	}
}
