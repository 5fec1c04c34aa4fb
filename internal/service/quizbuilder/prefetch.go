package quizbuilder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// PrefetchReport summarizes a cache warm-up run.
type PrefetchReport struct {
	Cached  []string
	Missing []string
	Failed  []string
}

// Prefetch resolves examples for words outside of any session so later
// sessions hit the cache. Word-count bounds do not apply. A failing word
// does not stop the run; failures are joined into the returned error.
func (b *Builder) Prefetch(ctx context.Context, words []string) (PrefetchReport, error) {
	var (
		report PrefetchReport
		errs   []error
	)

	for _, word := range domain.NormalizeWords(words) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		examples, err := b.resolveExamples(ctx, word)
		switch {
		case err != nil:
			report.Failed = append(report.Failed, word)
			errs = append(errs, fmt.Errorf("%s: %w", word, err))
		case len(examples) == 0:
			report.Missing = append(report.Missing, word)
		default:
			report.Cached = append(report.Cached, word)
		}
	}

	b.log.InfoContext(ctx, "prefetch finished",
		slog.Int("cached", len(report.Cached)),
		slog.Int("missing", len(report.Missing)),
		slog.Int("failed", len(report.Failed)),
	)

	return report, errors.Join(errs...)
}
