package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// OtpTTL is how long a one-time code stays valid after issue.
const OtpTTL = 600 * time.Second

// GenerateOtpCode returns a random six-digit code.
func GenerateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashOtp hashes a plaintext code for storage.
func HashOtp(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckOtp compares a plaintext code against a stored hash. bcrypt's
// comparison is constant-time over the hash.
func CheckOtp(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}

// OtpService issues and verifies single-use, time-boxed email codes.
type OtpService struct {
	Otps   *mongo.Collection
	Users  *mongo.Collection
	Logger *zap.Logger
}

// NewOtpService creates an OtpService over the shared client.
func NewOtpService(client *mongo.Client, dbName string, logger *zap.Logger) *OtpService {
	db := client.Database(dbName)
	return &OtpService{
		Otps:   db.Collection("otps"),
		Users:  db.Collection("users"),
		Logger: logger,
	}
}

// Issue creates a fresh code for the email, replacing any outstanding
// one, and returns the plaintext for delivery. Only the hash is stored.
func (s *OtpService) Issue(ctx context.Context, email string) (string, error) {
	code, err := GenerateOtpCode()
	if err != nil {
		return "", err
	}
	hash, err := HashOtp(code)
	if err != nil {
		return "", err
	}

	if _, err := s.Otps.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return "", err
	}

	now := time.Now()
	_, err = s.Otps.InsertOne(ctx, models.Otp{
		Email:     email,
		OtpHash:   hash,
		ExpiresAt: now.Add(OtpTTL),
		Used:      false,
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks a plaintext code for the email. On success the record is
// deleted (single use) and the user is marked verified. Every failure
// mode reports the same ErrInvalidOtp so callers cannot probe for
// registered emails.
func (s *OtpService) Verify(ctx context.Context, email, code string) error {
	var otp models.Otp
	err := s.Otps.FindOne(ctx, bson.M{
		"email":      email,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&otp)
	if err == mongo.ErrNoDocuments {
		return ErrInvalidOtp
	} else if err != nil {
		return err
	}

	if !CheckOtp(otp.OtpHash, code) {
		return ErrInvalidOtp
	}

	if _, err := s.Otps.DeleteOne(ctx, bson.M{"_id": otp.ID}); err != nil {
		return err
	}

	_, err = s.Users.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"is_verified": true},
	})
	return err
}
