package sov_test

import (
	"math"
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

func TestClean(t *testing.T) {
	n := sov.NewNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips html tags",
			input:    "<p>Hello <b>world</b></p>",
			expected: "Hello world",
		},
		{
			name:     "strips urls",
			input:    "visit https://example.com/path today",
			expected: "visit today",
		},
		{
			name:     "strips www urls",
			input:    "see www.example.com for details",
			expected: "see for details",
		},
		{
			name:     "strips emails",
			input:    "contact sales@acme.com now",
			expected: "contact now",
		},
		{
			name:     "collapses whitespace",
			input:    "too   many\n\n  spaces",
			expected: "too many spaces",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Clean(tt.input)
			if result != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSentences(t *testing.T) {
	n := sov.NewNormalizer()

	sentences := n.Sentences("First sentence here. Tiny. Another much longer sentence follows.")
	if len(sentences) != 2 {
		t.Fatalf("Sentences() returned %d sentences, want 2: %v", len(sentences), sentences)
	}
	if sentences[0] != "First sentence here" {
		t.Errorf("first sentence = %q, want %q", sentences[0], "First sentence here")
	}

	// Restartable: calling again yields the same result.
	again := n.Sentences("First sentence here. Tiny. Another much longer sentence follows.")
	if len(again) != len(sentences) {
		t.Errorf("second call returned %d sentences, want %d", len(again), len(sentences))
	}
}

func TestParagraphs(t *testing.T) {
	n := sov.NewNormalizer()

	paragraphs := n.Paragraphs("Short para.\n\nThis paragraph is definitely longer than twenty characters.")
	if len(paragraphs) != 1 {
		t.Fatalf("Paragraphs() returned %d paragraphs, want 1: %v", len(paragraphs), paragraphs)
	}
}

func TestIsTitleOrHeading(t *testing.T) {
	n := sov.NewNormalizer()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"navigational word", "Welcome", true},
		{"capitalized no terminal punctuation", "Leading Analytics Platforms", true},
		{"short word count", "the quick brown fox now", true},
		{"long text", "the quick brown fox jumped over the lazy dog and then it ran away into the field before returning home.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.IsTitleOrHeading(tt.input)
			if result != tt.expected {
				t.Errorf("IsTitleOrHeading(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWeight(t *testing.T) {
	n := sov.NewNormalizer()

	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{
			// Length 7 is not strictly greater than 20, so only the title
			// multiplier applies.
			name:     "short title gets no length bonus",
			input:    "Welcome",
			expected: 3.0,
		},
		{
			name:     "plain long sentence gets length bonus only",
			input:    "the quick brown fox jumped over the lazy dog and then it ran away.",
			expected: 1.5,
		},
		{
			name:     "title length digit and keyword compose multiplicatively",
			input:    "Reliable analytics for 2024 teams",
			expected: 3.0 * 1.5 * 1.2 * 1.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := n.Weight(tt.input)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Weight(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWeightAtLeastOne(t *testing.T) {
	n := sov.NewNormalizer()
	inputs := []string{"", "x", "the quick brown fox jumped over the lazy dog and then it ran away into the field before returning home slowly again."}
	for _, input := range inputs {
		if w := n.Weight(input); w < 1.0 {
			t.Errorf("Weight(%q) = %v, want >= 1.0", input, w)
		}
	}
}
