// internal/sov/aggregator.go
package sov

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Mention filter thresholds.
const (
	minMentionConfidence = 0.3
	minNegativeScore     = 0.5
	minTopicRelevance    = 0.1
	outlierMADFactor     = 3.0
	highRelevanceCutoff  = 0.7
)

// Aggregator orchestrates the full mention pipeline for one brand and its
// competitor set over a batch of generated answers. A single Calculate call
// owns all of its intermediate state; concurrent calls share nothing mutable.
type Aggregator struct {
	normalizer *Normalizer
	extractor  *Extractor
	scorer     *Scorer
}

func NewAggregator(extractor *Extractor, scorer *Scorer) *Aggregator {
	if extractor == nil {
		extractor = NewExtractor(NewRecognizer("regex"))
	}
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	return &Aggregator{
		normalizer: NewNormalizer(),
		extractor:  extractor,
		scorer:     scorer,
	}
}

// Calculate computes the share-of-voice distribution for brand against
// competitors over the given answers. The returned result is always
// structurally valid: when no mentions survive filtering it falls back to
// raw occurrence counts, and when there is no textual evidence at all it
// returns the fixed heuristic split. Any internal panic is converted into
// the same fixed split with StatusFallbackError. Result.Status tells callers
// which branch produced the numbers.
func (a *Aggregator) Calculate(brand string, competitors []string, answers []RawAnswer, topic string) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Calculate] Share of voice calculation failed, returning fallback: %v\n", r)
			result = a.fallbackResult(brand, competitors, StatusFallbackError)
		}
	}()

	allBrands := append([]string{brand}, competitors...)
	sources := EnrichSources(answers)
	keywords := TopicKeywords(topic)

	var mentions []Mention
	for _, source := range sources {
		mentions = append(mentions, a.analyzeSource(source, allBrands, keywords)...)
	}

	filtered := filterMentions(mentions)
	capOutliers(filtered)

	scoreByBrand := make(map[string]float64, len(allBrands))
	countByBrand := make(map[string]int, len(allBrands))
	for _, b := range allBrands {
		scoreByBrand[b] = 0
		countByBrand[b] = 0
	}

	totalScore := 0.0
	for _, mention := range filtered {
		scoreByBrand[mention.Brand] += mention.Score
		countByBrand[mention.Brand]++
		totalScore += mention.Score
	}

	if totalScore > 0 {
		shares := make(map[string]float64, len(allBrands))
		for _, b := range allBrands {
			shares[b] = round2(scoreByBrand[b] / totalScore * 100)
		}
		return &Result{
			Brand:             brand,
			Shares:            shares,
			MentionCounts:     countByBrand,
			TotalMentions:     len(filtered),
			BrandShare:        shares[brand],
			AIVisibilityScore: shares[brand],
			Status:            StatusMeasured,
			Breakdown:         buildBreakdown(filtered),
			CalculatedAt:      time.Now().UTC(),
		}
	}

	// No scored mentions survived: fall back to literal occurrence counts
	// over the raw text.
	occurrences := countOccurrences(allBrands, sources)
	totalOccurrences := 0
	for _, count := range occurrences {
		totalOccurrences += count
	}
	if totalOccurrences > 0 {
		shares := make(map[string]float64, len(allBrands))
		for _, b := range allBrands {
			shares[b] = round2(float64(occurrences[b]) / float64(totalOccurrences) * 100)
		}
		return &Result{
			Brand:             brand,
			Shares:            shares,
			MentionCounts:     occurrences,
			TotalMentions:     totalOccurrences,
			BrandShare:        shares[brand],
			AIVisibilityScore: shares[brand],
			Status:            StatusFallbackCounts,
			Breakdown:         emptyBreakdown(),
			CalculatedAt:      time.Now().UTC(),
		}
	}

	return a.fallbackResult(brand, competitors, StatusFallbackNoSignal)
}

// analyzeSource runs the full per-source pipeline: clean, extract, resolve,
// score. Candidate entities are restricted to the known brand set; with the
// candidate set this small, resolution is plain case-insensitive containment.
func (a *Aggregator) analyzeSource(source Source, allBrands []string, keywords []string) []Mention {
	cleaned := a.normalizer.Clean(source.Text)
	if cleaned == "" {
		return nil
	}

	paragraphs := a.normalizer.Paragraphs(source.Text)
	firstParagraph := ""
	if len(paragraphs) > 0 {
		firstParagraph = a.normalizer.Clean(paragraphs[0])
	}
	sentences := a.normalizer.Sentences(cleaned)

	candidates := a.extractor.Extract(cleaned, allBrands)
	now := time.Now().UTC()

	var mentions []Mention
	for _, entity := range candidates {
		resolved := resolveByContainment(entity, allBrands)
		if resolved == "" {
			continue
		}

		context := containingSpan(entity, sentences, cleaned)
		textWeight := a.normalizer.Weight(context)
		relevance := TopicRelevance(context, keywords)

		scored := a.scorer.Score(Occurrence{
			Entity:         entity,
			Context:        context,
			TextWeight:     textWeight,
			FirstParagraph: firstParagraph != "" && strings.Contains(firstParagraph, context),
		})

		matchType := MatchPartial
		if strings.EqualFold(entity, resolved) {
			matchType = MatchExact
		}

		mentions = append(mentions, Mention{
			Brand:          resolved,
			Entity:         entity,
			Context:        context,
			Confidence:     scored.Confidence,
			MatchType:      matchType,
			Score:          scored.Score * source.Weight * relevance,
			Sentiment:      scored.Sentiment,
			ContextType:    scored.ContextType,
			Provenance:     source.Provenance,
			SourceWeight:   source.Weight,
			TopicRelevance: relevance,
			CoMentions:     coMentions(resolved, allBrands, context),
			Timestamp:      now,
		})
	}

	return mentions
}

// resolveByContainment maps a candidate entity to the brand whose name
// contains it or is contained by it, case-insensitively.
func resolveByContainment(entity string, allBrands []string) string {
	lowerEntity := strings.ToLower(entity)
	for _, brand := range allBrands {
		lowerBrand := strings.ToLower(brand)
		if strings.Contains(lowerEntity, lowerBrand) || strings.Contains(lowerBrand, lowerEntity) {
			return brand
		}
	}
	return ""
}

// containingSpan returns the first sentence containing the entity, falling
// back to the whole cleaned text.
func containingSpan(entity string, sentences []string, cleaned string) string {
	lowerEntity := strings.ToLower(entity)
	for _, sentence := range sentences {
		if strings.Contains(strings.ToLower(sentence), lowerEntity) {
			return sentence
		}
	}
	return cleaned
}

// coMentions lists the other known brands textually present in the context.
func coMentions(brand string, allBrands []string, context string) []string {
	lowerContext := strings.ToLower(context)
	var others []string
	for _, other := range allBrands {
		if other == brand {
			continue
		}
		if strings.Contains(lowerContext, strings.ToLower(other)) {
			others = append(others, other)
		}
	}
	return others
}

// filterMentions drops low-confidence, weak-negative and off-topic mentions.
func filterMentions(mentions []Mention) []Mention {
	filtered := make([]Mention, 0, len(mentions))
	for _, mention := range mentions {
		if mention.Confidence < minMentionConfidence {
			continue
		}
		if mention.Sentiment == SentimentNegative && mention.Score < minNegativeScore {
			continue
		}
		if mention.TopicRelevance < minTopicRelevance {
			continue
		}
		filtered = append(filtered, mention)
	}
	return filtered
}

// capOutliers clamps mention scores above median + 3×MAD, where both median
// and MAD come from the original score set, not an iteratively re-derived
// one.
func capOutliers(mentions []Mention) {
	if len(mentions) < 2 {
		return
	}

	scores := make([]float64, len(mentions))
	for i, mention := range mentions {
		scores[i] = mention.Score
	}

	med := median(scores)
	deviations := make([]float64, len(scores))
	for i, score := range scores {
		deviations[i] = math.Abs(score - med)
	}
	mad := median(deviations)

	threshold := med + outlierMADFactor*mad
	for i := range mentions {
		if mentions[i].Score > threshold {
			mentions[i].Score = threshold
		}
	}
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// countOccurrences counts literal case-insensitive substring occurrences of
// each brand across all sources.
func countOccurrences(allBrands []string, sources []Source) map[string]int {
	counts := make(map[string]int, len(allBrands))
	for _, brand := range allBrands {
		counts[brand] = 0
	}
	for _, source := range sources {
		lowerText := strings.ToLower(source.Text)
		for _, brand := range allBrands {
			counts[brand] += strings.Count(lowerText, strings.ToLower(brand))
		}
	}
	return counts
}

// fallbackResult is the fixed heuristic split used when the pipeline finds
// no textual evidence or fails outright. The target brand receives
// min(35, max(15, round(100/(N+1))+10)) percent and the remainder is split
// evenly among N competitors. Callers must treat this as "no signal", not a
// measurement.
func (a *Aggregator) fallbackResult(brand string, competitors []string, status CalculationStatus) *Result {
	n := len(competitors)

	shares := make(map[string]float64, n+1)
	counts := make(map[string]int, n+1)
	counts[brand] = 0

	if n == 0 {
		shares[brand] = 100
	} else {
		brandShare := math.Round(100/float64(n+1)) + 10
		if brandShare < 15 {
			brandShare = 15
		}
		if brandShare > 35 {
			brandShare = 35
		}
		shares[brand] = brandShare

		competitorShare := round2((100 - brandShare) / float64(n))
		for _, competitor := range competitors {
			shares[competitor] = competitorShare
			counts[competitor] = 0
		}
	}

	return &Result{
		Brand:             brand,
		Shares:            shares,
		MentionCounts:     counts,
		TotalMentions:     0,
		BrandShare:        shares[brand],
		AIVisibilityScore: shares[brand],
		Status:            status,
		Breakdown:         emptyBreakdown(),
		CalculatedAt:      time.Now().UTC(),
	}
}

func buildBreakdown(mentions []Mention) Breakdown {
	breakdown := emptyBreakdown()

	relevanceSum := 0.0
	coCounts := make(map[[2]string]int)
	for _, mention := range mentions {
		breakdown.BySentiment[mention.Sentiment]++
		breakdown.ByContextType[mention.ContextType]++
		breakdown.ByProvenance[mention.Provenance] += mention.Score * mention.SourceWeight
		relevanceSum += mention.TopicRelevance
		if mention.TopicRelevance >= highRelevanceCutoff {
			breakdown.HighRelevanceMentions++
		}
		for _, other := range mention.CoMentions {
			pair := orderedPair(mention.Brand, other)
			coCounts[pair]++
		}
	}

	if len(mentions) > 0 {
		breakdown.AvgTopicRelevance = round2(relevanceSum / float64(len(mentions)))
	}

	for pair, count := range coCounts {
		breakdown.CoMentions = append(breakdown.CoMentions, CoMention{
			BrandA: pair[0],
			BrandB: pair[1],
			Count:  count,
		})
	}
	sort.Slice(breakdown.CoMentions, func(i, j int) bool {
		if breakdown.CoMentions[i].Count != breakdown.CoMentions[j].Count {
			return breakdown.CoMentions[i].Count > breakdown.CoMentions[j].Count
		}
		if breakdown.CoMentions[i].BrandA != breakdown.CoMentions[j].BrandA {
			return breakdown.CoMentions[i].BrandA < breakdown.CoMentions[j].BrandA
		}
		return breakdown.CoMentions[i].BrandB < breakdown.CoMentions[j].BrandB
	})

	return breakdown
}

func emptyBreakdown() Breakdown {
	return Breakdown{
		BySentiment:   make(map[Sentiment]int),
		ByContextType: make(map[ContextType]int),
		ByProvenance:  make(map[Provenance]float64),
	}
}

func orderedPair(a, b string) [2]string {
	if a > b {
		return [2]string{b, a}
	}
	return [2]string{a, b}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
