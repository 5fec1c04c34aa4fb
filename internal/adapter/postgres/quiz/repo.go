// Package quiz implements quiz persistence on PostgreSQL. A quiz is one row
// in quizzes plus one quiz_entries row per question, written in a single
// transaction.
package quiz

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	postgres "github.com/heartmarshall/quizmaker-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides quiz persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new quiz repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// InsertQuiz persists the quiz and its entries and returns the new id.
// Ids share the 24-hex format of the MongoDB store so share links stay
// valid whichever backend is configured.
func (r *Repo) InsertQuiz(ctx context.Context, q *domain.Quiz) (domain.QuizID, error) {
	id := domain.QuizID(primitive.NewObjectID().Hex())

	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	insertQuiz, args, err := psql.
		Insert("quizzes").
		Columns("id", "title", "created_at").
		Values(id.String(), q.Title, createdAt).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert quiz: %w", err)
	}

	err = r.txm.RunInTx(ctx, func(ctx context.Context) error {
		querier := postgres.QuerierFromCtx(ctx, r.pool)

		if _, err := querier.Exec(ctx, insertQuiz, args...); err != nil {
			return postgres.MapError(err, "quiz", id.String())
		}

		if len(q.Entries) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, e := range q.Entries {
			batch.Queue(
				`INSERT INTO quiz_entries (quiz_id, position, word, sentence) VALUES ($1, $2, $3, $4)`,
				id.String(), i, e.Word, e.Sentence,
			)
		}

		br := querier.SendBatch(ctx, batch)
		for range q.Entries {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return postgres.MapError(err, "quiz entry", id.String())
			}
		}
		return br.Close()
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// FindQuizByID returns a persisted quiz with entries in question order.
// Returns domain.ErrNotFound if absent.
func (r *Repo) FindQuizByID(ctx context.Context, id domain.QuizID) (*domain.Quiz, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.
		Select("id", "title", "created_at").
		From("quizzes").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select quiz: %w", err)
	}

	var (
		quiz  domain.Quiz
		rawID string
	)
	if err := querier.QueryRow(ctx, query, args...).Scan(&rawID, &quiz.Title, &quiz.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "quiz", id.String())
	}
	quiz.ID = domain.QuizID(rawID)
	quiz.CreatedAt = quiz.CreatedAt.UTC()

	query, args, err = psql.
		Select("word", "sentence").
		From("quiz_entries").
		Where(sq.Eq{"quiz_id": id.String()}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select quiz entries: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "quiz", id.String())
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.QuizEntry, error) {
		var e domain.QuizEntry
		err := row.Scan(&e.Word, &e.Sentence)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan quiz entries: %w", err)
	}
	quiz.Entries = entries

	return &quiz, nil
}
