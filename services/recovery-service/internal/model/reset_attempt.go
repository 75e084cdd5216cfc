package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResetAttempt is one append-only audit record of a password reset request.
// Records are only ever read in aggregate, as a count over a trailing window.
type ResetAttempt struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Email         string        `bson:"email"`
	SubjectKind   SubjectKind   `bson:"subject_kind"`
	Success       bool          `bson:"success"`
	SourceAddress string        `bson:"source_address,omitempty"`
	Timestamp     time.Time     `bson:"timestamp"`
}
