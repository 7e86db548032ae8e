// internal/sov/source.go
package sov

import "strings"

// generatedAnswerWeight is the provenance weight for generated answers.
// Other provenance types would carry their own weights here.
const generatedAnswerWeight = 1.0

// EnrichSources wraps raw answer records into uniform Source records tagged
// with the generated-answer provenance. Answers with empty or
// whitespace-only text are skipped.
func EnrichSources(answers []RawAnswer) []Source {
	sources := make([]Source, 0, len(answers))
	for _, answer := range answers {
		if strings.TrimSpace(answer.Text) == "" {
			continue
		}
		sources = append(sources, Source{
			Provenance: ProvenanceGeneratedAnswer,
			Text:       answer.Text,
			Weight:     generatedAnswerWeight,
		})
	}
	return sources
}
