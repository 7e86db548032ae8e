// internal/sov/matcher.go
package sov

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

var punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Match is a resolved brand for an entity string, with how and how well it
// matched.
type Match struct {
	Brand      string
	Confidence float64
	Type       MatchType
}

// Matcher resolves free-text entity strings to known target brands using
// exact, alias, fuzzy, word-overlap and domain heuristics.
type Matcher struct {
	registry *AliasRegistry
}

func NewMatcher(registry *AliasRegistry) *Matcher {
	if registry == nil {
		registry = NewAliasRegistry()
	}
	return &Matcher{registry: registry}
}

// Resolve maps an entity string to the best-matching brand in candidates, or
// nil if nothing matches. An exact normalized match wins immediately; every
// other heuristic accumulates candidate matches and the highest confidence
// is returned.
func (m *Matcher) Resolve(entity string, candidates []string) *Match {
	normEntity := normalizeName(entity)
	if normEntity == "" {
		return nil
	}

	var best *Match
	consider := func(match Match) {
		if best == nil || match.Confidence > best.Confidence {
			copied := match
			best = &copied
		}
	}

	for _, brand := range candidates {
		normBrand := normalizeName(brand)
		if normBrand == "" {
			continue
		}

		if normEntity == normBrand {
			return &Match{Brand: brand, Confidence: 1.0, Type: MatchExact}
		}

		if m.registry.IsAlias(normEntity, normBrand) {
			consider(Match{Brand: brand, Confidence: 0.9, Type: MatchAlias})
		}

		if strings.Contains(normEntity, normBrand) || strings.Contains(normBrand, normEntity) {
			if sim := similarity(normEntity, normBrand); sim > 0.6 {
				consider(Match{Brand: brand, Confidence: sim, Type: MatchPartial})
			}
		}

		if overlap := wordOverlap(normEntity, normBrand); overlap > 0.5 {
			consider(Match{Brand: brand, Confidence: overlap * 0.8, Type: MatchWord})
		}

		if sharesDomainPrefix(entity, brand) {
			consider(Match{Brand: brand, Confidence: 0.85, Type: MatchDomain})
		}
	}

	return best
}

// normalizeName lower-cases, strips punctuation to spaces and collapses
// whitespace.
func normalizeName(s string) string {
	lowered := strings.ToLower(s)
	stripped := punctuationPattern.ReplaceAllString(lowered, " ")
	return strings.Join(strings.Fields(stripped), " ")
}

// similarity is classic normalized edit distance: (maxLen - lev) / maxLen.
func similarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return float64(maxLen-distance) / float64(maxLen)
}

// wordOverlap is the token-overlap ratio between two multi-word names; zero
// when either side is a single word.
func wordOverlap(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) < 2 || len(wordsB) < 2 {
		return 0
	}

	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	shared := 0
	for _, w := range wordsA {
		if setB[w] {
			shared++
		}
	}

	smaller := len(wordsA)
	if len(wordsB) < smaller {
		smaller = len(wordsB)
	}
	return float64(shared) / float64(smaller)
}

// sharesDomainPrefix reports whether both names look domain-like and share
// the text before their first dot.
func sharesDomainPrefix(a, b string) bool {
	prefixA, okA := domainPrefix(a)
	prefixB, okB := domainPrefix(b)
	if !okA && !okB {
		return false
	}

	// One side may be a bare name; compare it against the other's prefix.
	if !okA {
		prefixA = strings.ToLower(strings.TrimSpace(a))
	}
	if !okB {
		prefixB = strings.ToLower(strings.TrimSpace(b))
	}
	return prefixA != "" && prefixA == prefixB
}

func domainPrefix(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "www.")
	idx := strings.Index(s, ".")
	if idx <= 0 || strings.ContainsAny(s, " \t") {
		return "", false
	}
	return s[:idx], true
}
