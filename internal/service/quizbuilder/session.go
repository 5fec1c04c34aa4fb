package quizbuilder

import (
	"maps"
	"slices"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// Session is the state of one quiz being built. It is owned by one caller at
// a time and only changed by Builder.Submit. Fields are replaced wholesale on
// each transition, never edited in place.
type Session struct {
	stage    domain.QuizStage
	examples domain.ExampleSet
	missing  []string
	chosen   map[string]string
	title    *string
	quizID   domain.QuizID
}

// NewSession returns a session in the COLLECTING stage.
func NewSession() *Session {
	return &Session{stage: domain.QuizStageCollecting}
}

func (s *Session) Stage() domain.QuizStage { return s.stage }

// Words returns the words still in the quiz, in the order they were submitted.
func (s *Session) Words() []string { return slices.Clone(s.examples.Words) }

// Candidates returns the masked example sentences resolved for word.
func (s *Session) Candidates(word string) []string {
	return slices.Clone(s.examples.Examples[word])
}

// Missing returns the words that resolved to no examples and were dropped.
func (s *Session) Missing() []string { return slices.Clone(s.missing) }

// Chosen returns the current word → sentence selection.
func (s *Session) Chosen() map[string]string { return maps.Clone(s.chosen) }

// Title returns the confirmed title, nil until PERSISTED or when none was given.
func (s *Session) Title() *string { return s.title }

// QuizID returns the persisted quiz id, empty until PERSISTED.
func (s *Session) QuizID() domain.QuizID { return s.quizID }
