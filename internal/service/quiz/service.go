// Package quiz serves persisted quizzes to quiz takers.
package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/quizmaker-backend/internal/config"
	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

type quizRepo interface {
	FindQuizByID(ctx context.Context, id domain.QuizID) (*domain.Quiz, error)
}

// Service looks up quizzes by the id carried in share links.
type Service struct {
	log     *slog.Logger
	quizzes quizRepo
	share   config.ShareConfig
}

// NewService creates a new quiz service.
func NewService(logger *slog.Logger, quizzes quizRepo, share config.ShareConfig) *Service {
	return &Service{
		log:     logger.With("service", "quiz"),
		quizzes: quizzes,
		share:   share,
	}
}

// GetQuiz validates rawID and returns the quiz it names.
// Returns a ValidationError for a malformed id and domain.ErrNotFound when
// the id is well-formed but unknown.
func (s *Service) GetQuiz(ctx context.Context, rawID string) (*domain.Quiz, error) {
	id, err := domain.ParseQuizID(rawID)
	if err != nil {
		s.log.WarnContext(ctx, "malformed quiz id", slog.String("quiz_id", rawID))
		return nil, err
	}

	q, err := s.quizzes.FindQuizByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	return q, nil
}

// ShareURL returns the link a quiz taker opens to take the quiz.
func (s *Service) ShareURL(id domain.QuizID) string {
	return s.share.ShareURL(id)
}
