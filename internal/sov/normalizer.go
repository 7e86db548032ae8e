// internal/sov/normalizer.go
package sov

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+\.\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	digitPattern      = regexp.MustCompile(`\d`)
	sentenceSplit     = regexp.MustCompile(`[.!?]+\s+|\n+`)
	paragraphSplit    = regexp.MustCompile(`\n\s*\n`)
	titleCasePattern  = regexp.MustCompile(`^[A-Z][^.!?]*$`)
)

// navigationalWords are terms common in page titles and section headings.
var navigationalWords = []string{
	"welcome", "about", "services", "products", "contact", "home",
	"overview", "introduction", "features", "pricing", "faq",
}

// importanceKeywords boost the weight of a span and the confidence of a
// mention found inside it.
var importanceKeywords = []string{
	"best", "top", "leading", "popular", "recommended", "trusted", "reliable",
}

// Normalizer cleans and segments raw answer text and assigns heuristic
// importance weights to text spans.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Clean removes HTML-like tags, URLs and email addresses, then collapses
// whitespace. It never fails: every step is a pure regex replacement.
func (n *Normalizer) Clean(text string) string {
	cleaned := htmlTagPattern.ReplaceAllString(text, " ")
	cleaned = urlPattern.ReplaceAllString(cleaned, " ")
	cleaned = emailPattern.ReplaceAllString(cleaned, " ")
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Sentences splits text into sentence-like substrings longer than 10
// characters. The result is finite and the split is restartable by calling
// again with the same input.
func (n *Normalizer) Sentences(text string) []string {
	parts := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if len(trimmed) > 10 {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// Paragraphs splits text on blank-line boundaries into substrings longer
// than 20 characters.
func (n *Normalizer) Paragraphs(text string) []string {
	parts := paragraphSplit.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if len(trimmed) > 20 {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

// IsTitleOrHeading reports whether a span of text looks like a page title or
// section heading. Text of 100+ characters never qualifies; below that, any
// one signal is sufficient: a navigational word, a starts-capitalized span
// with no terminal punctuation, or a short span of at most 8 words.
func (n *Normalizer) IsTitleOrHeading(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) >= 100 || trimmed == "" {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, word := range navigationalWords {
		if strings.Contains(lower, word) {
			return true
		}
	}

	if titleCasePattern.MatchString(trimmed) {
		return true
	}

	words := strings.Fields(trimmed)
	if len(words) <= 8 && len(trimmed) > 10 {
		return true
	}

	return false
}

// Weight computes the importance weight of a text span, starting at 1.0.
// Multipliers compose multiplicatively: 3.0 for titles/headings, 1.5 for
// lengths strictly between 20 and 200 characters, 1.2 when the span contains
// a digit, 1.3 when it contains an importance keyword.
func (n *Normalizer) Weight(text string) float64 {
	weight := 1.0

	if n.IsTitleOrHeading(text) {
		weight *= 3.0
	}

	// Strict bounds: a 20-character span does not get the length bonus.
	if len(text) > 20 && len(text) < 200 {
		weight *= 1.5
	}

	if digitPattern.MatchString(text) {
		weight *= 1.2
	}

	lower := strings.ToLower(text)
	for _, keyword := range importanceKeywords {
		if strings.Contains(lower, keyword) {
			weight *= 1.3
			break
		}
	}

	return weight
}

// containsImportanceKeyword reports whether the text mentions any of the
// fixed importance keywords.
func containsImportanceKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range importanceKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// isPurelyNumeric reports whether the string contains only digits and
// numeric punctuation.
func isPurelyNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != ',' && r != '%' {
			return false
		}
	}
	return true
}
