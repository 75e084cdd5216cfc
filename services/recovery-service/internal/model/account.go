package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Account statuses as persisted in the accounts collection.
const (
	AccountActive    = "active"
	AccountSuspended = "suspended"
	AccountDeleted   = "deleted"
)

// Account represents a credentialed marketplace account, either an end user
// or a mentor. The recovery service only ever touches the password hash and
// the status field.
type Account struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	Kind         SubjectKind   `bson:"kind"`
	PasswordHash string        `bson:"password_hash"`
	Status       string        `bson:"status"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
