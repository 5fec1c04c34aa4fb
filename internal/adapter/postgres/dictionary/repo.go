// Package dictionary implements the example cache on PostgreSQL.
package dictionary

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/quizmaker-backend/internal/adapter/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo caches word examples in the word_examples table.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dictionary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// FindExamples returns the cached examples for a normalized word.
// Returns domain.ErrNotFound if the word was never cached.
func (r *Repo) FindExamples(ctx context.Context, word string) ([]string, error) {
	query, args, err := psql.
		Select("examples").
		From("word_examples").
		Where(sq.Eq{"word": word}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select examples: %w", err)
	}

	var examples []string
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&examples); err != nil {
		return nil, postgres.MapError(err, "word", word)
	}
	if examples == nil {
		examples = []string{}
	}
	return examples, nil
}

// InsertWord stores the examples of a word, replacing any previous list.
func (r *Repo) InsertWord(ctx context.Context, word string, examples []string) error {
	if examples == nil {
		examples = []string{}
	}

	query, args, err := psql.
		Insert("word_examples").
		Columns("word", "examples", "updated_at").
		Values(word, examples, sq.Expr("now()")).
		Suffix("ON CONFLICT (word) DO UPDATE SET examples = EXCLUDED.examples, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert word: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "word", word)
	}
	return nil
}
