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

// AccountRepository defines the account operations the recovery service needs.
type AccountRepository interface {
	GetAccountByEmail(ctx context.Context, email string, kind model.SubjectKind) (*model.Account, error)
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error
	UpdateStatus(ctx context.Context, id string, status string) error
}

const accountCollection = "accounts"

type accountMongoRepository struct {
	db *mongo.Database
}

// NewAccountMongoRepository creates a new MongoDB repository for accounts.
func NewAccountMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) AccountRepository {
	collection := db.Collection(accountCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "kind", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create account indexes")
	}

	return &accountMongoRepository{db: db}
}

func (r *accountMongoRepository) GetAccountByEmail(
	ctx context.Context,
	email string,
	kind model.SubjectKind,
) (*model.Account, error) {
	result := r.db.Collection(accountCollection).FindOne(ctx, bson.M{"email": email, "kind": kind})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var account model.Account
	if err := result.Decode(&account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountMongoRepository) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		},
	}

	_, err = r.db.Collection(accountCollection).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}

func (r *accountMongoRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	}

	_, err = r.db.Collection(accountCollection).UpdateOne(ctx, bson.M{"_id": objectID}, update)
	return err
}
