package quizbuilder

import (
	"fmt"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// ErrInvalidTransition is returned for an event the current stage does not accept.
var ErrInvalidTransition = fmt.Errorf("invalid transition: %w", domain.ErrConflict)

// transitions is the complete table of allowed stage changes.
// Fetching happens inside the SubmitWords handler and is never a resting stage.
var transitions = map[domain.QuizStage]map[EventKind]domain.QuizStage{
	domain.QuizStageCollecting: {EventSubmitWords: domain.QuizStageChoosing},
	domain.QuizStageChoosing:   {EventSubmitChoices: domain.QuizStageEditing},
	domain.QuizStageEditing:    {EventSubmitEdits: domain.QuizStageConfirming},
	domain.QuizStageConfirming: {EventConfirm: domain.QuizStagePersisted},
}

func nextStage(from domain.QuizStage, kind EventKind) (domain.QuizStage, error) {
	next, ok := transitions[from][kind]
	if !ok {
		return from, fmt.Errorf("%s in stage %s: %w", kind, from, ErrInvalidTransition)
	}
	return next, nil
}

// Accepts reports which event the stage accepts, or "" for a terminal stage.
func Accepts(stage domain.QuizStage) EventKind {
	for kind := range transitions[stage] {
		return kind
	}
	return ""
}
