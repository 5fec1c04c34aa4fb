package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/quizmaker-backend/internal/adapter/memory"
	"github.com/heartmarshall/quizmaker-backend/internal/adapter/mongodb"
	"github.com/heartmarshall/quizmaker-backend/internal/adapter/postgres"
	"github.com/heartmarshall/quizmaker-backend/internal/adapter/postgres/dictionary"
	quizrepo "github.com/heartmarshall/quizmaker-backend/internal/adapter/postgres/quiz"
	"github.com/heartmarshall/quizmaker-backend/internal/config"
	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// Store is what every backend offers: the example cache, quiz persistence
// and a health probe.
type Store interface {
	FindExamples(ctx context.Context, word string) ([]string, error)
	InsertWord(ctx context.Context, word string, examples []string) error
	InsertQuiz(ctx context.Context, quiz *domain.Quiz) (domain.QuizID, error)
	FindQuizByID(ctx context.Context, id domain.QuizID) (*domain.Quiz, error)
	Ping(ctx context.Context) error
}

// postgresStore joins the two PostgreSQL repositories behind one Store.
type postgresStore struct {
	words   *dictionary.Repo
	quizzes *quizrepo.Repo
	pool    *pgxpool.Pool
}

func (s postgresStore) FindExamples(ctx context.Context, word string) ([]string, error) {
	return s.words.FindExamples(ctx, word)
}

func (s postgresStore) InsertWord(ctx context.Context, word string, examples []string) error {
	return s.words.InsertWord(ctx, word, examples)
}

func (s postgresStore) InsertQuiz(ctx context.Context, quiz *domain.Quiz) (domain.QuizID, error) {
	return s.quizzes.InsertQuiz(ctx, quiz)
}

func (s postgresStore) FindQuizByID(ctx context.Context, id domain.QuizID) (*domain.Quiz, error) {
	return s.quizzes.FindQuizByID(ctx, id)
}

func (s postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// OpenStore connects the backend selected by cfg.Store.Driver. The returned
// close func is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case domain.StoreDriverMongo:
		client, err := mongodb.NewClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, noop, err
		}
		store := mongodb.New(client, cfg.Mongo)
		if err := store.EnsureIndexes(ctx); err != nil {
			// Without the index concurrent upserts may duplicate a word,
			// lookups still work.
			logger.Warn("mongo indexes not ensured", slog.String("error", err.Error()))
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Error("mongo disconnect", slog.String("error", err.Error()))
			}
		}
		return store, closeFn, nil

	case domain.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, noop, err
			}
		}
		store := postgresStore{
			words:   dictionary.New(pool),
			quizzes: quizrepo.New(pool, postgres.NewTxManager(pool)),
			pool:    pool,
		}
		return store, pool.Close, nil

	case domain.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.New(), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
