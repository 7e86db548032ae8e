package sov_test

import (
	"math"
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

func TestResolveExact(t *testing.T) {
	m := sov.NewMatcher(sov.NewAliasRegistry())

	match := m.Resolve("Google", []string{"Google"})
	if match == nil {
		t.Fatal("Resolve(Google) returned nil, want exact match")
	}
	if match.Type != sov.MatchExact {
		t.Errorf("match type = %s, want %s", match.Type, sov.MatchExact)
	}
	if match.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", match.Confidence)
	}
	if match.Brand != "Google" {
		t.Errorf("brand = %s, want Google", match.Brand)
	}
}

func TestResolveAlias(t *testing.T) {
	m := sov.NewMatcher(sov.NewAliasRegistry())

	match := m.Resolve("Alphabet Inc", []string{"Google"})
	if match == nil {
		t.Fatal("Resolve(Alphabet Inc) returned nil, want alias match")
	}
	if match.Type != sov.MatchAlias {
		t.Errorf("match type = %s, want %s", match.Type, sov.MatchAlias)
	}
	if match.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", match.Confidence)
	}
}

func TestResolvePartial(t *testing.T) {
	m := sov.NewMatcher(sov.NewAliasRegistry())

	match := m.Resolve("HubSpot CRM", []string{"HubSpot"})
	if match == nil {
		t.Fatal("Resolve(HubSpot CRM) returned nil, want partial match")
	}
	if match.Type != sov.MatchPartial {
		t.Errorf("match type = %s, want %s", match.Type, sov.MatchPartial)
	}
	// similarity = (11 - lev("hubspot crm", "hubspot")) / 11
	expected := (11.0 - 4.0) / 11.0
	if math.Abs(match.Confidence-expected) > 1e-9 {
		t.Errorf("confidence = %v, want %v", match.Confidence, expected)
	}
}

func TestResolveWordOverlap(t *testing.T) {
	m := sov.NewMatcher(sov.NewAliasRegistry())

	match := m.Resolve("Acme Cloud Services", []string{"Acme Cloud Platform"})
	if match == nil {
		t.Fatal("Resolve(Acme Cloud Services) returned nil, want word match")
	}
	if match.Type != sov.MatchWord {
		t.Errorf("match type = %s, want %s", match.Type, sov.MatchWord)
	}
	expected := (2.0 / 3.0) * 0.8
	if math.Abs(match.Confidence-expected) > 1e-9 {
		t.Errorf("confidence = %v, want %v", match.Confidence, expected)
	}
}

func TestResolveDomain(t *testing.T) {
	m := sov.NewMatcher(sov.NewAliasRegistry())

	match := m.Resolve("acme.io", []string{"Acme"})
	if match == nil {
		t.Fatal("Resolve(acme.io) returned nil, want domain match")
	}
	if match.Type != sov.MatchDomain {
		t.Errorf("match type = %s, want %s", match.Type, sov.MatchDomain)
	}
	if match.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", match.Confidence)
	}
}

func TestResolveNoMatch(t *testing.T) {
	m := sov.NewMatcher(sov.NewAliasRegistry())

	tests := []struct {
		name       string
		entity     string
		candidates []string
	}{
		{"unrelated entity", "Zzyzx", []string{"Google", "Microsoft"}},
		{"empty entity", "", []string{"Google"}},
		{"empty candidates", "Google", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if match := m.Resolve(tt.entity, tt.candidates); match != nil {
				t.Errorf("Resolve(%q) = %+v, want nil", tt.entity, match)
			}
		})
	}
}

func TestResolvePicksHighestConfidence(t *testing.T) {
	registry := sov.NewAliasRegistry()
	registry.AddAlias("Acme Cloud", "acme platform")
	m := sov.NewMatcher(registry)

	// Alias (0.9) must beat word overlap for the same brand.
	match := m.Resolve("Acme Platform", []string{"Acme Cloud"})
	if match == nil {
		t.Fatal("Resolve(Acme Platform) returned nil")
	}
	if match.Type != sov.MatchAlias {
		t.Errorf("match type = %s, want %s", match.Type, sov.MatchAlias)
	}
	if match.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", match.Confidence)
	}
}
