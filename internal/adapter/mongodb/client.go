// Package mongodb implements the example store and quiz store on MongoDB.
// Documents use two collections: dictionary {word, examples, updated} and
// quizzes {title, quiz, updated}, where quiz maps each word to its sentence.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/quizmaker-backend/internal/config"
)

// NewClient connects to MongoDB using MongoConfig and pings the primary for
// fail-fast validation. The caller must Disconnect the client on shutdown.
func NewClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}
