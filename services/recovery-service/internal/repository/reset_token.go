package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/onlymentors/account-recovery-api/services/recovery-service/internal/model"
)

// ResetTokenRepository defines the interface for password reset token operations.
type ResetTokenRepository interface {
	// CreateToken persists a new password reset token.
	CreateToken(ctx context.Context, token *model.ResetToken) (*model.ResetToken, error)

	// GetActiveToken retrieves an unused, unexpired token by secret and
	// subject kind. Read-only; safe to call repeatedly.
	GetActiveToken(ctx context.Context, secret string, kind model.SubjectKind) (*model.ResetToken, error)

	// ConsumeToken atomically marks a still-valid token as used and returns
	// the token as it was before the update. Returns mongo.ErrNoDocuments if
	// no unused, unexpired token matches, including when the token was
	// consumed by a concurrent request.
	ConsumeToken(ctx context.Context, secret string, kind model.SubjectKind) (*model.ResetToken, error)

	// DeleteTokensCreatedBefore removes every token created before the
	// cutoff, used or not, and reports how many were deleted.
	DeleteTokensCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

const resetTokenCollection = "password_reset_tokens"

type resetTokenMongoRepository struct {
	db *mongo.Database
}

// NewResetTokenMongoRepository creates a new MongoDB repository for password reset tokens.
func NewResetTokenMongoRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	db *mongo.Database,
) ResetTokenRepository {
	collection := db.Collection(resetTokenCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "secret", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create password reset token indexes")
	}

	return &resetTokenMongoRepository{db: db}
}

func (r *resetTokenMongoRepository) CreateToken(
	ctx context.Context,
	token *model.ResetToken,
) (*model.ResetToken, error) {
	token.CreatedAt = time.Now()
	token.Used = false

	result, err := r.db.Collection(resetTokenCollection).InsertOne(ctx, token)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		token.ID = objectID
	}

	return token, nil
}

func (r *resetTokenMongoRepository) GetActiveToken(
	ctx context.Context,
	secret string,
	kind model.SubjectKind,
) (*model.ResetToken, error) {
	filter := bson.M{
		"secret":       secret,
		"subject_kind": kind,
		"used":         false,
		"expires_at":   bson.M{"$gt": time.Now()},
	}

	var token model.ResetToken
	err := r.db.Collection(resetTokenCollection).FindOne(ctx, filter).Decode(&token)
	if err != nil {
		return nil, err
	}

	return &token, nil
}

func (r *resetTokenMongoRepository) ConsumeToken(
	ctx context.Context,
	secret string,
	kind model.SubjectKind,
) (*model.ResetToken, error) {
	now := time.Now()
	filter := bson.M{
		"secret":       secret,
		"subject_kind": kind,
		"used":         false,
		"expires_at":   bson.M{"$gt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"used":    true,
			"used_at": now,
		},
	}

	// The conditional update and the read of the prior document are a single
	// server-side operation, so two concurrent redemptions of the same secret
	// cannot both observe it as unused.
	result := r.db.Collection(resetTokenCollection).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var token model.ResetToken
	if err := result.Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

func (r *resetTokenMongoRepository) DeleteTokensCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	filter := bson.M{
		"created_at": bson.M{"$lt": cutoff},
	}

	result, err := r.db.Collection(resetTokenCollection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
