package quizbuilder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// collect handles COLLECTING → CHOOSING. Missing words are dropped and
// reported; the bound is only checked here, on the submitted set.
func (b *Builder) collect(ctx context.Context, s *Session, e SubmitWords) (Outcome, error) {
	words := domain.NormalizeWords(e.Words)
	if n := len(words); n < domain.MinQuizWords || n > domain.MaxQuizWords {
		return Outcome{}, domain.NewValidationError("words",
			fmt.Sprintf("must contain between %d and %d unique words, got %d", domain.MinQuizWords, domain.MaxQuizWords, n))
	}

	b.log.DebugContext(ctx, "resolving examples", slog.Int("words", len(words)))

	set := domain.ExampleSet{
		Words:    make([]string, 0, len(words)),
		Examples: make(map[string][]string, len(words)),
	}
	var missing []string

	for _, word := range words {
		examples, err := b.resolveExamples(ctx, word)
		if err != nil {
			return Outcome{}, err
		}
		if len(examples) == 0 {
			missing = append(missing, word)
			continue
		}
		set.Words = append(set.Words, word)
		set.Examples[word] = examples
	}

	if len(missing) > 0 {
		b.log.WarnContext(ctx, "words without examples", slog.Any("missing", missing))
	}

	s.examples = set
	s.missing = missing
	s.chosen = nil

	return Outcome{Missing: missing}, nil
}
