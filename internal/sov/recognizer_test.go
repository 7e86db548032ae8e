// internal/sov/recognizer_test.go
package sov

import "testing"

func TestNewRecognizerVariantSelection(t *testing.T) {
	tests := []struct {
		kind      string
		wantProse bool
	}{
		{"prose", true},
		{" Prose ", true},
		{"regex", false},
		{"", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			recognizer := NewRecognizer(tt.kind)
			_, isProse := recognizer.(*proseRecognizer)
			if isProse != tt.wantProse {
				t.Errorf("NewRecognizer(%q) prose variant = %v, want %v", tt.kind, isProse, tt.wantProse)
			}
		})
	}
}

func TestRegexRecognizer(t *testing.T) {
	r := &regexRecognizer{}

	orgs := r.Organizations("The report covers Acme Corp and Initech Inc in detail.")
	if len(orgs) != 2 {
		t.Fatalf("Organizations() = %v, want 2 entries", orgs)
	}

	nouns := r.ProperNouns("Salesforce Marketing Cloud competes with Adobe Campaign here.")
	if len(nouns) == 0 {
		t.Fatal("ProperNouns() returned nothing for capitalized sequences")
	}
}
