// Package memory implements the example store and quiz store in process
// memory. It backs local runs and tests; data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// Store is a concurrency-safe in-memory store. All reads return copies.
type Store struct {
	mu      sync.RWMutex
	words   map[string][]string
	quizzes map[domain.QuizID]domain.Quiz
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		words:   make(map[string][]string),
		quizzes: make(map[domain.QuizID]domain.Quiz),
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// FindExamples returns the cached examples for word.
// Returns domain.ErrNotFound if the word was never cached.
func (s *Store) FindExamples(ctx context.Context, word string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	examples, ok := s.words[word]
	if !ok {
		return nil, fmt.Errorf("word %s: %w", word, domain.ErrNotFound)
	}
	return slices.Clone(examples), nil
}

// InsertWord stores the examples of a word, replacing any previous list.
func (s *Store) InsertWord(ctx context.Context, word string, examples []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := slices.Clone(examples)
	if stored == nil {
		stored = []string{}
	}

	s.mu.Lock()
	s.words[word] = stored
	s.mu.Unlock()
	return nil
}

// InsertQuiz stores a copy of the quiz under a fresh 24-hex id.
func (s *Store) InsertQuiz(ctx context.Context, quiz *domain.Quiz) (domain.QuizID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := domain.QuizID(primitive.NewObjectID().Hex())
	stored := cloneQuiz(*quiz)
	stored.ID = id

	s.mu.Lock()
	s.quizzes[id] = stored
	s.mu.Unlock()
	return id, nil
}

// FindQuizByID returns a copy of a stored quiz.
// Returns domain.ErrNotFound if absent.
func (s *Store) FindQuizByID(ctx context.Context, id domain.QuizID) (*domain.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	quiz, ok := s.quizzes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("quiz %s: %w", id, domain.ErrNotFound)
	}

	out := cloneQuiz(quiz)
	return &out, nil
}

func cloneQuiz(q domain.Quiz) domain.Quiz {
	if q.Title != nil {
		title := *q.Title
		q.Title = &title
	}
	q.Entries = slices.Clone(q.Entries)
	return q
}
