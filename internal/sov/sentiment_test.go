// internal/sov/sentiment_test.go
package sov_test

import (
	"testing"

	"github.com/brandlens-ai/brandlens-workflows/internal/sov"
)

func TestLexiconPolarity(t *testing.T) {
	analyzer := sov.NewLexiconAnalyzer()

	tests := []struct {
		name string
		text string
		want sov.Sentiment
	}{
		{
			name: "positive wording",
			text: "The platform is reliable and the support team is helpful.",
			want: sov.SentimentPositive,
		},
		{
			name: "negative wording",
			text: "The editor felt clunky and the exports were unreliable.",
			want: sov.SentimentNegative,
		},
		{
			name: "no valence words",
			text: "The company ships software to customers in several regions.",
			want: sov.SentimentNeutral,
		},
		{
			name: "mixed polarity cancels out",
			text: "One reviewer said great things while another said terrible things.",
			want: sov.SentimentNeutral,
		},
		{
			name: "weak signal stays inside the neutral band",
			text: "It is easy to move data between the two systems here today.",
			want: sov.SentimentNeutral,
		},
		{
			name: "punctuation stripped before lookup",
			text: "Reliable!",
			want: sov.SentimentPositive,
		},
		{
			name: "empty text",
			text: "",
			want: sov.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.Polarity(tt.text); got != tt.want {
				t.Errorf("Polarity(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewSentimentAnalyzerDefaultsToLexicon(t *testing.T) {
	analyzer := sov.NewSentimentAnalyzer("")
	if analyzer == nil {
		t.Fatal("NewSentimentAnalyzer returned nil")
	}
	if got := analyzer.Polarity("An outstanding and excellent experience overall."); got != sov.SentimentPositive {
		t.Errorf("Polarity = %q, want %q", got, sov.SentimentPositive)
	}
}
