// internal/sov/scorer.go
package sov

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	listItemPattern      = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	markdownHeadPattern  = regexp.MustCompile(`^#{1,6}\s+`)
	terminalPunctPattern = regexp.MustCompile(`[.!?]\s*$`)
)

var (
	comparisonKeywords     = []string{" vs ", " vs. ", "versus", "compared", "comparison", "alternative", "alternatives", "better than"}
	recommendationKeywords = []string{"best", "top ", "recommend", "suggested", "should use", "should consider", "ideal", "great choice"}
	reviewKeywords         = []string{"review", "rating", "rated", "stars", "pros", "cons", "my experience", "tested"}
)

// contextWeights is the fixed per-context multiplier table.
var contextWeights = map[ContextType]float64{
	ContextTitle:          3.0,
	ContextHeading:        2.5,
	ContextFirstParagraph: 2.0,
	ContextListItem:       1.5,
	ContextComparison:     1.8,
	ContextRecommendation: 2.2,
	ContextReview:         1.7,
	ContextNormal:         1.0,
}

// sentimentMultipliers adjust the composite score by polarity.
var sentimentMultipliers = map[Sentiment]float64{
	SentimentPositive: 1.2,
	SentimentNegative: 0.8,
	SentimentNeutral:  1.0,
}

// Occurrence is one entity sighting handed to the scorer: the entity string,
// the sentence or paragraph containing it, the span weight from the
// normalizer, and whether the context sits in the source's first paragraph.
type Occurrence struct {
	Entity         string
	Context        string
	TextWeight     float64
	FirstParagraph bool
}

// MentionScore is the scorer's output for one occurrence.
type MentionScore struct {
	Score       float64
	Confidence  float64
	Sentiment   Sentiment
	ContextType ContextType
}

// Scorer classifies mention contexts and computes composite mention scores.
type Scorer struct {
	sentiment SentimentAnalyzer
}

func NewScorer(analyzer SentimentAnalyzer) *Scorer {
	if analyzer == nil {
		analyzer = NewLexiconAnalyzer()
	}
	return &Scorer{sentiment: analyzer}
}

// ClassifyContext classifies a context span using text rules alone; the
// first-paragraph category only applies when position is known, see Score.
func (s *Scorer) ClassifyContext(text string) ContextType {
	return s.classify(text, false)
}

// classify checks the category rules in fixed priority order; the first
// matching rule wins.
func (s *Scorer) classify(text string, firstParagraph bool) ContextType {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if isTitleLine(trimmed) {
		return ContextTitle
	}
	if isHeadingLine(trimmed) {
		return ContextHeading
	}
	if firstParagraph {
		return ContextFirstParagraph
	}
	if listItemPattern.MatchString(text) {
		return ContextListItem
	}
	if containsAny(lower, comparisonKeywords) {
		return ContextComparison
	}
	if containsAny(lower, recommendationKeywords) {
		return ContextRecommendation
	}
	if containsAny(lower, reviewKeywords) {
		return ContextReview
	}
	return ContextNormal
}

// Confidence estimates how certain the pipeline is that this occurrence is a
// real brand mention. Base 0.5, boosted by entity length, important context
// keywords, repetition, company suffixes and domain-like entities; capped at
// 1.0.
func (s *Scorer) Confidence(entity, context string) float64 {
	confidence := 0.5

	if len(entity) > 8 {
		confidence += 0.1
	}
	if containsImportanceKeyword(context) {
		confidence += 0.2
	}

	occurrences := strings.Count(strings.ToLower(context), strings.ToLower(entity))
	if occurrences > 1 {
		repeat := float64(occurrences-1) * 0.05
		if repeat > 0.2 {
			repeat = 0.2
		}
		confidence += repeat
	}

	if hasCompanySuffix(entity) {
		confidence += 0.1
	}
	if looksLikeDomain(entity) {
		confidence += 0.15
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// Score computes the composite mention score for one occurrence:
// textWeight × contextWeight × sentimentMultiplier × confidence.
func (s *Scorer) Score(o Occurrence) MentionScore {
	contextType := s.classify(o.Context, o.FirstParagraph)
	polarity := s.sentiment.Polarity(o.Context)
	confidence := s.Confidence(o.Entity, o.Context)

	textWeight := o.TextWeight
	if textWeight <= 0 {
		textWeight = 1.0
	}

	score := textWeight * contextWeights[contextType] * sentimentMultipliers[polarity] * confidence

	return MentionScore{
		Score:       score,
		Confidence:  confidence,
		Sentiment:   polarity,
		ContextType: contextType,
	}
}

// isTitleLine: short, starts capitalized, at most 8 words, no terminal
// punctuation. Stricter than Normalizer.IsTitleOrHeading so that questions
// and sentences fall through to the keyword categories.
func isTitleLine(text string) bool {
	if text == "" || len(text) >= 100 {
		return false
	}
	if terminalPunctPattern.MatchString(text) || strings.HasSuffix(text, "?") {
		return false
	}
	runes := []rune(text)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	return len(strings.Fields(text)) <= 8
}

// isHeadingLine: markdown heading markers, an all-caps line, or a short
// colon-terminated label.
func isHeadingLine(text string) bool {
	if markdownHeadPattern.MatchString(text) {
		return true
	}
	if len(text) < 100 && strings.HasSuffix(text, ":") && len(strings.Fields(text)) <= 10 {
		return true
	}
	if len(text) < 80 && text == strings.ToUpper(text) && strings.ContainsFunc(text, unicode.IsLetter) {
		return true
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
