package quizbuilder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

const (
	sourceStore    = "example store"
	sourceProvider = "example provider"
)

// resolveExamples returns the masked examples for word, reading through the
// store to the provider. A nil result with a nil error means the word has
// no examples. Empty results are not cached so a later session can retry.
func (b *Builder) resolveExamples(ctx context.Context, word string) ([]string, error) {
	cached, err := b.findCached(ctx, word)
	switch {
	case err == nil && len(cached) > 0:
		return cached, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		b.log.ErrorContext(ctx, "example store lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, domain.NewRemoteError(sourceStore, err)
	}

	raw, err := b.fetch(ctx, word)
	if err != nil {
		b.log.ErrorContext(ctx, "example provider error",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, domain.NewRemoteError(sourceProvider, err)
	}

	examples := domain.CleanExamples(raw, word)
	if len(examples) == 0 {
		return nil, nil
	}

	if err := b.saveWord(ctx, word, examples); err != nil {
		b.log.ErrorContext(ctx, "example store write failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, domain.NewRemoteError(sourceStore, err)
	}

	b.log.InfoContext(ctx, "examples fetched and cached",
		slog.String("word", word),
		slog.Int("examples", len(examples)),
	)

	return examples, nil
}

func (b *Builder) findCached(ctx context.Context, word string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.opts.StoreTimeout)
	defer cancel()
	return b.store.FindExamples(ctx, word)
}

func (b *Builder) fetch(ctx context.Context, word string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.opts.ProviderTimeout)
	defer cancel()
	return b.provider.FetchExamples(ctx, word)
}

func (b *Builder) saveWord(ctx context.Context, word string, examples []string) error {
	ctx, cancel := context.WithTimeout(ctx, b.opts.StoreTimeout)
	defer cancel()
	return b.store.InsertWord(ctx, word, examples)
}
