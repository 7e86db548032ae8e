// internal/sov/types.go
package sov

import "time"

// Provenance identifies where a source text came from.
type Provenance string

const (
	// ProvenanceGeneratedAnswer is the only provenance populated today.
	// The type exists so per-provenance weights can diverge later.
	ProvenanceGeneratedAnswer Provenance = "generated_answer"
)

// Source is one piece of text to analyze, tagged with its origin and weight.
type Source struct {
	Provenance Provenance
	Text       string
	Weight     float64
}

// RawAnswer is the caller-facing input record: one generated answer text.
type RawAnswer struct {
	Text string `json:"text"`
}

// MatchType describes how an entity string was resolved to a brand.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchAlias   MatchType = "alias"
	MatchPartial MatchType = "partial"
	MatchWord    MatchType = "word"
	MatchDomain  MatchType = "domain"
)

// Sentiment is the polarity label for a mention context.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// ContextType classifies the kind of text a mention appears in.
type ContextType string

const (
	ContextTitle          ContextType = "title"
	ContextHeading        ContextType = "heading"
	ContextFirstParagraph ContextType = "first_paragraph"
	ContextListItem       ContextType = "list_item"
	ContextComparison     ContextType = "comparison"
	ContextRecommendation ContextType = "recommendation"
	ContextReview         ContextType = "review"
	ContextNormal         ContextType = "normal"
)

// Mention is one resolved, scored occurrence of a known brand inside a source.
type Mention struct {
	Brand          string      `json:"brand"`
	Entity         string      `json:"entity"`
	Context        string      `json:"context"`
	Confidence     float64     `json:"confidence"`
	MatchType      MatchType   `json:"match_type"`
	Score          float64     `json:"score"`
	Sentiment      Sentiment   `json:"sentiment"`
	ContextType    ContextType `json:"context_type"`
	Provenance     Provenance  `json:"provenance"`
	SourceWeight   float64     `json:"source_weight"`
	TopicRelevance float64     `json:"topic_relevance"`
	CoMentions     []string    `json:"co_mentions,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// CalculationStatus tells callers whether the numbers were measured from
// detected mentions or fabricated by a fallback branch. Dashboards must not
// present fallback results as measurements.
type CalculationStatus string

const (
	StatusMeasured         CalculationStatus = "measured"
	StatusFallbackCounts   CalculationStatus = "fallback_counts"
	StatusFallbackNoSignal CalculationStatus = "fallback_no_signal"
	StatusFallbackError    CalculationStatus = "fallback_error"
)

// CoMention counts how often two brands appeared in the same context.
type CoMention struct {
	BrandA string `json:"brand_a"`
	BrandB string `json:"brand_b"`
	Count  int    `json:"count"`
}

// Breakdown carries observability-only aggregates over the filtered mention
// set. Nothing here feeds back into the percentage calculation.
type Breakdown struct {
	BySentiment           map[Sentiment]int      `json:"by_sentiment"`
	ByContextType         map[ContextType]int    `json:"by_context_type"`
	ByProvenance          map[Provenance]float64 `json:"by_provenance"`
	AvgTopicRelevance     float64                `json:"avg_topic_relevance"`
	HighRelevanceMentions int                    `json:"high_relevance_mentions"`
	CoMentions            []CoMention            `json:"co_mentions,omitempty"`
}

// Result is the aggregate share-of-voice output for one brand+competitor set
// over one batch of answers.
type Result struct {
	Brand             string             `json:"brand"`
	Shares            map[string]float64 `json:"shares"`
	MentionCounts     map[string]int     `json:"mention_counts"`
	TotalMentions     int                `json:"total_mentions"`
	BrandShare        float64            `json:"brand_share"`
	AIVisibilityScore float64            `json:"ai_visibility_score"`
	Status            CalculationStatus  `json:"status"`
	Breakdown         Breakdown          `json:"breakdown"`
	CalculatedAt      time.Time          `json:"calculated_at"`
}
