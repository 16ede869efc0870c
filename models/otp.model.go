package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Otp is a one-time verification code for an email address. The code is
// stored only as a bcrypt hash; the record is deleted on first
// successful verification.
type Otp struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	OtpHash   string             `bson:"otp_hash" json:"-"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expiresAt"`
	Used      bool               `bson:"used" json:"used"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
