// internal/sov/sentiment.go
package sov

import (
	"fmt"
	"strings"

	"github.com/cdipaolo/sentiment"
)

// SentimentAnalyzer labels the polarity of a mention context. The lexicon
// variant is the default; the model variant wraps the cdipaolo/sentiment
// naive-bayes classifier.
type SentimentAnalyzer interface {
	Polarity(text string) Sentiment
}

// NewSentimentAnalyzer returns the analyzer variant named by kind: "model"
// or "lexicon". The model variant needs to restore its trained weights; if
// that fails the lexicon variant is returned instead.
func NewSentimentAnalyzer(kind string) SentimentAnalyzer {
	if strings.EqualFold(strings.TrimSpace(kind), "model") {
		analyzer, err := NewModelAnalyzer()
		if err != nil {
			fmt.Printf("[NewSentimentAnalyzer] Model restore failed, using lexicon analyzer: %v\n", err)
			return NewLexiconAnalyzer()
		}
		return analyzer
	}
	return NewLexiconAnalyzer()
}

// lexiconAnalyzer scores text with an AFINN-style valence lexicon: the
// signed sum over tokens divided by token count, with a neutral band of
// (-0.1, 0.1).
type lexiconAnalyzer struct {
	valences map[string]float64
}

func NewLexiconAnalyzer() SentimentAnalyzer {
	return &lexiconAnalyzer{valences: valenceLexicon}
}

func (a *lexiconAnalyzer) Polarity(text string) Sentiment {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return SentimentNeutral
	}

	sum := 0.0
	for _, token := range tokens {
		token = strings.Trim(token, `.,!?;:"'()[]`)
		sum += a.valences[token]
	}

	comparative := sum / float64(len(tokens))
	switch {
	case comparative > 0.1:
		return SentimentPositive
	case comparative < -0.1:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// modelAnalyzer wraps the cdipaolo/sentiment binary classifier. It has no
// neutral class of its own, so very short texts with no alphabetic content
// are treated as neutral.
type modelAnalyzer struct {
	models sentiment.Models
}

func NewModelAnalyzer() (SentimentAnalyzer, error) {
	models, err := sentiment.Restore()
	if err != nil {
		return nil, fmt.Errorf("failed to restore sentiment model: %w", err)
	}
	return &modelAnalyzer{models: models}, nil
}

func (a *modelAnalyzer) Polarity(text string) Sentiment {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return SentimentNeutral
	}

	analysis := a.models.SentimentAnalysis(trimmed, sentiment.English)
	if analysis.Score == 1 {
		return SentimentPositive
	}
	return SentimentNegative
}

// valenceLexicon is an AFINN-style subset covering the vocabulary common in
// generated product and service answers. Scores range -5..5.
var valenceLexicon = map[string]float64{
	"amazing": 4, "awesome": 4, "best": 3, "better": 2, "brilliant": 4,
	"excellent": 3, "exceptional": 4, "fantastic": 4, "great": 3, "good": 3,
	"impressive": 3, "leading": 2, "love": 3, "loved": 3, "outstanding": 5,
	"perfect": 3, "popular": 2, "powerful": 2, "recommend": 2, "recommended": 2,
	"reliable": 2, "robust": 2, "seamless": 2, "strong": 2, "superior": 3,
	"top": 2, "trusted": 2, "valuable": 2, "win": 4, "winner": 4,
	"innovative": 2, "intuitive": 2, "efficient": 2, "effective": 2,
	"affordable": 2, "easy": 1, "fast": 1, "flexible": 1, "friendly": 2,
	"helpful": 2, "quality": 2, "rich": 2, "secure": 2, "simple": 1,
	"smooth": 2, "solid": 2, "useful": 2, "versatile": 2, "modern": 1,
	"favorite": 3, "ideal": 3, "premier": 2, "renowned": 2, "standout": 3,

	"awful": -3, "bad": -3, "broken": -2, "buggy": -3, "clunky": -2,
	"complicated": -2, "confusing": -2, "costly": -2, "dated": -1,
	"difficult": -1, "disappointing": -2, "expensive": -2, "fail": -2,
	"failed": -2, "failure": -2, "flawed": -2, "frustrating": -2,
	"hate": -3, "horrible": -3, "inferior": -2, "lacking": -2, "lacks": -2,
	"limited": -1, "mediocre": -2, "overpriced": -2, "poor": -2,
	"problem": -2, "problems": -2, "slow": -2, "struggle": -2,
	"struggles": -2, "terrible": -3, "unreliable": -2, "unstable": -2,
	"weak": -2, "worse": -3, "worst": -3, "wrong": -2, "outdated": -2,
	"cumbersome": -2, "pricey": -2, "risky": -2, "vulnerable": -2,
}
