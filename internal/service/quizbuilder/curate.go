package quizbuilder

import (
	"maps"
	"slices"
	"strings"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// choose handles CHOOSING → EDITING. Every remaining word needs exactly one
// choice, taken from its own candidates.
func (b *Builder) choose(s *Session, e SubmitChoices) error {
	var errs []domain.FieldError

	for _, word := range s.examples.Words {
		sentence, ok := e.Choices[word]
		if !ok {
			errs = append(errs, domain.FieldError{Field: "choices." + word, Message: "required"})
			continue
		}
		if !slices.Contains(s.examples.Examples[word], sentence) {
			errs = append(errs, domain.FieldError{Field: "choices." + word, Message: "must be one of the candidate examples"})
		}
	}
	errs = append(errs, unknownWords("choices", e.Choices, s.examples)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}

	chosen := make(map[string]string, len(s.examples.Words))
	for _, word := range s.examples.Words {
		chosen[word] = e.Choices[word]
	}
	s.chosen = chosen
	return nil
}

// edit handles EDITING → CONFIRMING. Words without an edit keep their choice.
func (b *Builder) edit(s *Session, e SubmitEdits) error {
	errs := unknownWords("edits", e.Edits, s.examples)
	for _, word := range sortedKeys(e.Edits) {
		if s.examples.Has(word) && strings.TrimSpace(e.Edits[word]) == "" {
			errs = append(errs, domain.FieldError{Field: "edits." + word, Message: "must not be blank"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}

	edited := maps.Clone(s.chosen)
	if edited == nil {
		edited = make(map[string]string)
	}
	for word, sentence := range e.Edits {
		edited[word] = strings.TrimSpace(sentence)
	}
	s.chosen = edited
	return nil
}

func unknownWords(field string, submitted map[string]string, set domain.ExampleSet) []domain.FieldError {
	var errs []domain.FieldError
	for _, word := range sortedKeys(submitted) {
		if !set.Has(word) {
			errs = append(errs, domain.FieldError{Field: field + "." + word, Message: "not a quiz word"})
		}
	}
	return errs
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
