package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/quizmaker-backend/internal/config"
	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

// wordDoc is a cached word in the dictionary collection.
type wordDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Word     string             `bson:"word"`
	Examples []string           `bson:"examples"`
	Updated  time.Time          `bson:"updated"`
}

// quizDoc is a persisted quiz. Quiz is an ordered word → sentence document
// so question order survives the round trip.
type quizDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Title   *string            `bson:"title"`
	Quiz    bson.D             `bson:"quiz"`
	Updated time.Time          `bson:"updated"`
}

// Store provides example caching and quiz persistence backed by MongoDB.
type Store struct {
	client  *mongo.Client
	words   *mongo.Collection
	quizzes *mongo.Collection
}

// New creates a Store on the database and collections named in cfg.
func New(client *mongo.Client, cfg config.MongoConfig) *Store {
	db := client.Database(cfg.Database)
	return &Store{
		client:  client,
		words:   db.Collection(cfg.DictionaryCollection),
		quizzes: db.Collection(cfg.QuizCollection),
	}
}

// EnsureIndexes creates the unique index on dictionary.word that makes
// InsertWord an upsert-by-word under concurrent writers.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.words.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "word", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("word_unique"),
	})
	if err != nil {
		return fmt.Errorf("create dictionary index: %w", err)
	}
	return nil
}

// Ping checks connectivity to the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// ---------------------------------------------------------------------------
// Example cache
// ---------------------------------------------------------------------------

// FindExamples returns the cached examples for a normalized word.
// Returns domain.ErrNotFound if the word was never cached.
func (s *Store) FindExamples(ctx context.Context, word string) ([]string, error) {
	var doc wordDoc
	err := s.words.FindOne(ctx, bson.M{"word": word}).Decode(&doc)
	if err != nil {
		return nil, mapError(err, "word", word)
	}
	if doc.Examples == nil {
		return []string{}, nil
	}
	return doc.Examples, nil
}

// InsertWord stores the examples of a word, replacing any previous list.
func (s *Store) InsertWord(ctx context.Context, word string, examples []string) error {
	_, err := s.words.UpdateOne(ctx,
		bson.M{"word": word},
		bson.M{"$set": bson.M{
			"examples": examples,
			"updated":  time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		// Two upserts of a new word can race on the unique index; the
		// loser retries as a plain update of the winner's document.
		if mongo.IsDuplicateKeyError(err) {
			_, err = s.words.UpdateOne(ctx,
				bson.M{"word": word},
				bson.M{"$set": bson.M{"examples": examples, "updated": time.Now().UTC()}},
			)
		}
		if err != nil {
			return mapError(err, "word", word)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Quizzes
// ---------------------------------------------------------------------------

// InsertQuiz persists a quiz and returns its ObjectID as a QuizID.
func (s *Store) InsertQuiz(ctx context.Context, quiz *domain.Quiz) (domain.QuizID, error) {
	entries := make(bson.D, 0, len(quiz.Entries))
	for _, e := range quiz.Entries {
		entries = append(entries, bson.E{Key: e.Word, Value: e.Sentence})
	}

	doc := quizDoc{
		ID:      primitive.NewObjectID(),
		Title:   quiz.Title,
		Quiz:    entries,
		Updated: quiz.CreatedAt,
	}

	res, err := s.quizzes.InsertOne(ctx, doc)
	if err != nil {
		return "", mapError(err, "quiz", doc.ID.Hex())
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert quiz: unexpected id type %T", res.InsertedID)
	}
	return domain.QuizID(oid.Hex()), nil
}

// FindQuizByID returns a persisted quiz. Returns domain.ErrNotFound if absent.
func (s *Store) FindQuizByID(ctx context.Context, id domain.QuizID) (*domain.Quiz, error) {
	oid, err := primitive.ObjectIDFromHex(id.String())
	if err != nil {
		return nil, domain.NewValidationError("quiz_id", "invalid quiz id")
	}

	var doc quizDoc
	if err := s.quizzes.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError(err, "quiz", id.String())
	}

	quiz, err := toDomainQuiz(doc)
	if err != nil {
		return nil, fmt.Errorf("quiz %s: %w", id, err)
	}
	return quiz, nil
}

func toDomainQuiz(doc quizDoc) (*domain.Quiz, error) {
	entries := make([]domain.QuizEntry, 0, len(doc.Quiz))
	for _, e := range doc.Quiz {
		sentence, ok := e.Value.(string)
		if !ok {
			return nil, errors.New("quiz entry " + e.Key + " is not a string")
		}
		entries = append(entries, domain.QuizEntry{Word: e.Key, Sentence: sentence})
	}

	return &domain.Quiz{
		ID:        domain.QuizID(doc.ID.Hex()),
		Title:     doc.Title,
		Entries:   entries,
		CreatedAt: doc.Updated.UTC(),
	}, nil
}
