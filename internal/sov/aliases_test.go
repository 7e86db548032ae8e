package sov_test

import (
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

func TestAliasRegistrySeed(t *testing.T) {
	r := sov.NewAliasRegistry()

	if size := r.Size(); size < 40 {
		t.Errorf("registry size = %d, want at least 40 seeded brands", size)
	}

	tests := []struct {
		entity string
		brand  string
	}{
		{"Facebook", "Meta"},
		{"Alphabet", "Google"},
		{"AWS", "Amazon"},
		{"Twitter", "X"},
	}
	for _, tt := range tests {
		if !r.IsAlias(tt.entity, tt.brand) {
			t.Errorf("IsAlias(%q, %q) = false, want true", tt.entity, tt.brand)
		}
	}
}

func TestAliasRegistryCaseInsensitive(t *testing.T) {
	r := sov.NewAliasRegistry()

	if !r.IsAlias("FACEBOOK", "meta") {
		t.Error("IsAlias should be case-insensitive")
	}
	if r.IsAlias("Facebook", "Google") {
		t.Error("IsAlias(Facebook, Google) = true, want false")
	}
}

func TestAddAlias(t *testing.T) {
	r := sov.NewAliasRegistry()
	r.AddAlias("NewBrand", "NB Corp", "newbrand.io")

	if !r.IsAlias("NB Corp", "NewBrand") {
		t.Error("added alias not resolvable")
	}
	if !r.IsAlias("nb corp", "newbrand") {
		t.Error("added alias not resolvable case-insensitively")
	}

	// Adding the same alias twice must not duplicate.
	r.AddAlias("NewBrand", "NB Corp")
	count := 0
	for _, alias := range r.AliasesOf("NewBrand") {
		if alias == "nb corp" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("alias stored %d times, want 1", count)
	}
}

func TestAddDomainVariants(t *testing.T) {
	r := sov.NewAliasRegistry()
	r.AddDomainVariants("www.acme.io", "Acme")

	tests := []string{"acme.io", "www.acme.io"}
	for _, entity := range tests {
		if !r.IsAlias(entity, "Acme") {
			t.Errorf("IsAlias(%q, Acme) = false, want true", entity)
		}
	}
}
