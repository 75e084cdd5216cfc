package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SubjectKind identifies which class of account a reset token applies to.
type SubjectKind string

const (
	SubjectUser   SubjectKind = "user"
	SubjectMentor SubjectKind = "mentor"
)

// Valid reports whether the kind is one of the recognized account classes.
func (k SubjectKind) Valid() bool {
	return k == SubjectUser || k == SubjectMentor
}

// ResetToken is a single-use password reset credential. The secret is the
// bearer string emailed to the account holder; it is unique across all live
// tokens and redeemable only while unused and unexpired.
type ResetToken struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	TokenID     string        `bson:"token_id"`
	Secret      string        `bson:"secret"`
	Email       string        `bson:"email"`
	SubjectKind SubjectKind   `bson:"subject_kind"`
	Used        bool          `bson:"used"`
	UsedAt      *time.Time    `bson:"used_at,omitempty"`
	CreatedAt   time.Time     `bson:"created_at"`
	ExpiresAt   time.Time     `bson:"expires_at"`
}
