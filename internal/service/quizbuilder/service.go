// Package quizbuilder implements the quiz assembly workflow: collect words,
// resolve examples, choose, edit, confirm and persist.
package quizbuilder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

type exampleStore interface {
	FindExamples(ctx context.Context, word string) ([]string, error)
	InsertWord(ctx context.Context, word string, examples []string) error
	InsertQuiz(ctx context.Context, quiz *domain.Quiz) (domain.QuizID, error)
}

type exampleProvider interface {
	FetchExamples(ctx context.Context, word string) ([]string, error)
}

const (
	defaultCallTimeout = 5 * time.Second
	maxTitleLength     = 200
)

// Options configures a Builder. Zero values fall back to defaults.
type Options struct {
	// ProviderTimeout and StoreTimeout bound each single remote call.
	ProviderTimeout time.Duration
	StoreTimeout    time.Duration
}

// Builder advances quiz-building sessions through their stages.
// It holds no session state and is safe for concurrent use.
type Builder struct {
	log      *slog.Logger
	store    exampleStore
	provider exampleProvider
	opts     Options
	now      func() time.Time
}

// NewBuilder creates a new Builder.
func NewBuilder(logger *slog.Logger, store exampleStore, provider exampleProvider, opts Options) *Builder {
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = defaultCallTimeout
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = defaultCallTimeout
	}

	return &Builder{
		log:      logger.With("service", "quizbuilder"),
		store:    store,
		provider: provider,
		opts:     opts,
		now:      time.Now,
	}
}

// Outcome reports the result of a successful transition.
type Outcome struct {
	Stage domain.QuizStage
	// Missing lists words that resolved to no examples. Set only by SubmitWords.
	Missing []string
	// QuizID is set only by Confirm.
	QuizID domain.QuizID
}

// Submit applies event to the session. On error the session is left exactly
// as it was and the same event may be submitted again.
func (b *Builder) Submit(ctx context.Context, s *Session, event Event) (Outcome, error) {
	if s == nil {
		return Outcome{}, fmt.Errorf("submit: nil session")
	}
	if event == nil {
		return Outcome{Stage: s.stage}, domain.NewValidationError("event", "required")
	}

	from := s.stage
	next, err := nextStage(from, event.Kind())
	if err != nil {
		return Outcome{Stage: from}, err
	}

	var out Outcome
	switch e := event.(type) {
	case SubmitWords:
		out, err = b.collect(ctx, s, e)
	case SubmitChoices:
		err = b.choose(s, e)
	case SubmitEdits:
		err = b.edit(s, e)
	case Confirm:
		out, err = b.confirm(ctx, s, e)
	default:
		err = fmt.Errorf("event %s: %w", event.Kind(), ErrInvalidTransition)
	}
	if err != nil {
		b.log.DebugContext(ctx, "transition rejected",
			slog.String("stage", from.String()),
			slog.String("event", string(event.Kind())),
			slog.String("error", err.Error()),
		)
		return Outcome{Stage: from}, err
	}

	s.stage = next
	out.Stage = next

	b.log.InfoContext(ctx, "quiz session advanced",
		slog.String("from", from.String()),
		slog.String("to", next.String()),
	)

	return out, nil
}
