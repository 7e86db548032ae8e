// internal/sov/entity.go
package sov

import (
	"regexp"
	"strings"
)

// Extraction patterns, tried in a fixed order. All matches are unioned; the
// extractor is deliberately over-inclusive and relies on the matcher and
// scorer downstream to discard noise.
var (
	multiWordCapPattern  = regexp.MustCompile(`\b[A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)+\b`)
	companySuffixPattern = regexp.MustCompile(`\b[A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*\s+(?:Inc|Corp|Corporation|LLC|Ltd|Co|Company|Group|Technologies|Solutions|Systems|Software|Labs)\.?\b`)
	domainTokenPattern   = regexp.MustCompile(`\b[a-zA-Z0-9][a-zA-Z0-9-]*\.(?:com|io|ai|net|org|co|app|dev|tech)\b`)
	singleCapPattern     = regexp.MustCompile(`\b[A-Z][A-Za-z]{2,}\b`)
	tldSuffixPattern     = regexp.MustCompile(`\b\S+\.(?:ai|io|app|dev|tech)\b`)
)

// companySuffixTokens are legal/company suffixes used for confidence boosts
// and entity validation.
var companySuffixTokens = []string{
	"inc", "corp", "corporation", "llc", "ltd", "co", "company",
	"group", "technologies", "solutions", "systems", "software", "labs",
}

// entityStopWords are discarded outright when they appear as a whole
// candidate entity.
var entityStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "this": true,
	"that": true, "from": true, "your": true, "our": true, "their": true,
	"are": true, "was": true, "has": true, "have": true, "will": true,
	"can": true, "how": true, "what": true, "when": true, "where": true,
	"why": true, "who": true, "which": true, "these": true, "those": true,
	"here": true, "there": true, "they": true, "you": true, "not": true,
	"but": true, "all": true, "some": true, "many": true, "more": true,
	"most": true, "other": true, "into": true, "over": true, "also": true,
}

// Extractor finds candidate brand/organization name strings in free text.
type Extractor struct {
	recognizer EntityRecognizer
}

func NewExtractor(recognizer EntityRecognizer) *Extractor {
	return &Extractor{recognizer: recognizer}
}

// Extract returns a deduplicated, order-preserving list of candidate entity
// strings found in text. Known brands are matched directly first, then the
// fixed pattern list, then the recognizer's organizations and proper nouns.
func (e *Extractor) Extract(text string, knownBrands []string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var candidates []string

	add := func(candidate string) {
		candidate = strings.TrimSpace(candidate)
		if !validEntity(candidate) {
			return
		}
		key := strings.ToLower(candidate)
		if seen[key] {
			return
		}
		seen[key] = true
		candidates = append(candidates, candidate)
	}

	lowerText := strings.ToLower(text)
	for _, brand := range knownBrands {
		if strings.Contains(lowerText, strings.ToLower(brand)) {
			add(brand)
		}
	}

	patterns := []*regexp.Regexp{
		multiWordCapPattern,
		companySuffixPattern,
		domainTokenPattern,
		singleCapPattern,
		tldSuffixPattern,
	}
	for _, pattern := range patterns {
		for _, match := range pattern.FindAllString(text, -1) {
			add(match)
		}
	}

	if e.recognizer != nil {
		for _, org := range e.recognizer.Organizations(text) {
			add(org)
		}
		for _, noun := range e.recognizer.ProperNouns(text) {
			add(noun)
		}
	}

	return candidates
}

// validEntity applies the caller-side discard rules: minimum length, not
// purely numeric, not a stop word.
func validEntity(candidate string) bool {
	if len(candidate) < 3 {
		return false
	}
	if isPurelyNumeric(candidate) {
		return false
	}
	if entityStopWords[strings.ToLower(candidate)] {
		return false
	}
	return true
}

// hasCompanySuffix reports whether the entity ends with a legal/company
// suffix token.
func hasCompanySuffix(entity string) bool {
	fields := strings.Fields(strings.ToLower(strings.TrimRight(entity, ".")))
	if len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	for _, suffix := range companySuffixTokens {
		if last == suffix {
			return true
		}
	}
	return false
}

// looksLikeDomain reports whether the entity resembles a bare domain name.
func looksLikeDomain(entity string) bool {
	return domainTokenPattern.MatchString(entity) || tldSuffixPattern.MatchString(entity)
}
