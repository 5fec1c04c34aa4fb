package domain

import (
	"encoding/hex"
	"strings"
	"time"
)

// Word-count bounds for a quiz, inclusive.
const (
	MinQuizWords = 3
	MaxQuizWords = 20
)

// DefaultQuizTitle is shown when a quiz was saved without a title.
const DefaultQuizTitle = "Quiz"

// QuizID is the store-assigned identifier of a persisted quiz: 24 lowercase
// hex characters (the MongoDB ObjectID format). Share links embed it, so
// every store backend must produce ids of this shape.
type QuizID string

func (id QuizID) String() string { return string(id) }

// ParseQuizID validates a raw identifier taken from a share link or user input.
func ParseQuizID(raw string) (QuizID, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", NewValidationError("quiz_id", "required")
	}
	if len(s) != 24 {
		return "", NewValidationError("quiz_id", "invalid quiz id")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", NewValidationError("quiz_id", "invalid quiz id")
	}
	return QuizID(s), nil
}

// ExampleSet holds the candidate example sentences resolved for each word of
// a quiz, with Words keeping the user's order.
type ExampleSet struct {
	Words    []string
	Examples map[string][]string
}

// Has reports whether word belongs to the set.
func (s ExampleSet) Has(word string) bool {
	_, ok := s.Examples[word]
	return ok
}

// QuizEntry is one question of a quiz: the hidden word and its masked sentence.
type QuizEntry struct {
	Word     string
	Sentence string
}

// Quiz is a persisted, shareable quiz. It is never updated after creation.
type Quiz struct {
	ID        QuizID
	Title     *string
	Entries   []QuizEntry
	CreatedAt time.Time
}

// DisplayTitle returns the title, or DefaultQuizTitle when none was given.
func (q *Quiz) DisplayTitle() string {
	if q.Title == nil || strings.TrimSpace(*q.Title) == "" {
		return DefaultQuizTitle
	}
	return *q.Title
}

// Words returns the quiz words in question order.
func (q *Quiz) Words() []string {
	words := make([]string, len(q.Entries))
	for i, e := range q.Entries {
		words[i] = e.Word
	}
	return words
}
