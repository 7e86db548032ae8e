// internal/sov/recognizer.go
package sov

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// EntityRecognizer pulls organization-like strings out of free text. Two
// variants exist: one backed by the prose NLP toolkit and one that is pure
// regex. The variant is chosen once at construction time by configuration,
// not per call.
type EntityRecognizer interface {
	Organizations(text string) []string
	ProperNouns(text string) []string
}

// NewRecognizer returns the recognizer variant named by kind: "prose" or
// "regex". Unknown values fall back to the regex variant.
func NewRecognizer(kind string) EntityRecognizer {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "prose":
		return &proseRecognizer{}
	default:
		return &regexRecognizer{}
	}
}

// proseRecognizer uses the prose NLP toolkit for NER and POS tagging.
type proseRecognizer struct{}

func (r *proseRecognizer) Organizations(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		fmt.Printf("[proseRecognizer] Document parse failed, returning no organizations: %v\n", err)
		return nil
	}

	var orgs []string
	for _, ent := range doc.Entities() {
		// prose labels organizations and geopolitical entities; both can
		// carry brand names in generated answers.
		if ent.Label == "ORG" || ent.Label == "GPE" {
			orgs = append(orgs, strings.TrimSpace(ent.Text))
		}
	}
	return orgs
}

func (r *proseRecognizer) ProperNouns(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		fmt.Printf("[proseRecognizer] Document parse failed, returning no proper nouns: %v\n", err)
		return nil
	}

	var nouns []string
	var current []string
	for _, tok := range doc.Tokens() {
		if tok.Tag == "NNP" || tok.Tag == "NNPS" {
			current = append(current, tok.Text)
			continue
		}
		if len(current) > 0 {
			nouns = append(nouns, strings.Join(current, " "))
			current = nil
		}
	}
	if len(current) > 0 {
		nouns = append(nouns, strings.Join(current, " "))
	}
	return nouns
}

// regexRecognizer approximates organization detection with the capitalized
// sequence and company suffix patterns shared with the extractor.
type regexRecognizer struct{}

func (r *regexRecognizer) Organizations(text string) []string {
	return companySuffixPattern.FindAllString(text, -1)
}

func (r *regexRecognizer) ProperNouns(text string) []string {
	return multiWordCapPattern.FindAllString(text, -1)
}
