// internal/sov/source_test.go
package sov_test

import (
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

func TestEnrichSources(t *testing.T) {
	answers := []sov.RawAnswer{
		{Text: "HubSpot is a popular CRM platform."},
		{Text: ""},
		{Text: "   \n\t  "},
		{Text: "Salesforce leads the enterprise segment."},
	}

	sources := sov.EnrichSources(answers)
	if len(sources) != 2 {
		t.Fatalf("EnrichSources returned %d sources, want 2", len(sources))
	}

	for i, source := range sources {
		if source.Provenance != sov.ProvenanceGeneratedAnswer {
			t.Errorf("source %d provenance = %q, want %q", i, source.Provenance, sov.ProvenanceGeneratedAnswer)
		}
		if source.Weight != 1.0 {
			t.Errorf("source %d weight = %v, want 1.0", i, source.Weight)
		}
	}
	if sources[0].Text != answers[0].Text {
		t.Errorf("source 0 text = %q, want %q", sources[0].Text, answers[0].Text)
	}
	if sources[1].Text != answers[3].Text {
		t.Errorf("source 1 text = %q, want %q", sources[1].Text, answers[3].Text)
	}
}
