package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/model"
)

// ResetAttemptRepository defines the interface for the reset attempt log.
// The log is append-only; records are never mutated.
type ResetAttemptRepository interface {
	// AppendAttempt records a single reset request, successful or not.
	AppendAttempt(ctx context.Context, attempt *model.ResetAttempt) error

	// CountAttemptsSince returns the number of attempts for an email within
	// the trailing window starting at since.
	CountAttemptsSince(ctx context.Context, email string, since time.Time) (int64, error)
}

const resetAttemptCollection = "password_reset_logs"

type resetAttemptMongoRepository struct {
	db *mongo.Database
}

// NewResetAttemptMongoRepository creates a new MongoDB repository for the reset attempt log.
func NewResetAttemptMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) ResetAttemptRepository {
	collection := db.Collection(resetAttemptCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create password reset log indexes")
	}

	return &resetAttemptMongoRepository{db: db}
}

func (r *resetAttemptMongoRepository) AppendAttempt(ctx context.Context, attempt *model.ResetAttempt) error {
	attempt.Timestamp = time.Now()

	result, err := r.db.Collection(resetAttemptCollection).InsertOne(ctx, attempt)
	if err != nil {
		return err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		attempt.ID = objectID
	}

	return nil
}

func (r *resetAttemptMongoRepository) CountAttemptsSince(
	ctx context.Context,
	email string,
	since time.Time,
) (int64, error) {
	filter := bson.M{
		"email":     email,
		"timestamp": bson.M{"$gte": since},
	}

	return r.db.Collection(resetAttemptCollection).CountDocuments(ctx, filter)
}
