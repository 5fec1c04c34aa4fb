package quizbuilder

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// confirm handles CONFIRMING → PERSISTED with exactly one store write.
// A failed write leaves the session in CONFIRMING.
func (b *Builder) confirm(ctx context.Context, s *Session, e Confirm) (Outcome, error) {
	title, err := normalizeTitle(e.Title)
	if err != nil {
		return Outcome{}, err
	}

	quiz := &domain.Quiz{
		Title:     title,
		Entries:   make([]domain.QuizEntry, 0, len(s.examples.Words)),
		CreatedAt: b.now().UTC(),
	}
	for _, word := range s.examples.Words {
		quiz.Entries = append(quiz.Entries, domain.QuizEntry{Word: word, Sentence: s.chosen[word]})
	}

	storeCtx, cancel := context.WithTimeout(ctx, b.opts.StoreTimeout)
	defer cancel()

	id, err := b.store.InsertQuiz(storeCtx, quiz)
	if err != nil {
		b.log.ErrorContext(ctx, "quiz insert failed", slog.String("error", err.Error()))
		return Outcome{}, domain.NewRemoteError(sourceStore, err)
	}

	s.title = title
	s.quizID = id

	b.log.InfoContext(ctx, "quiz persisted",
		slog.String("quiz_id", id.String()),
		slog.Int("questions", len(quiz.Entries)),
	)

	return Outcome{QuizID: id}, nil
}

func normalizeTitle(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	title := strings.TrimSpace(*raw)
	if title == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, domain.NewValidationError("title", "max 200 characters")
	}
	return &title, nil
}
