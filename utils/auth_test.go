package utils_test

import (
	"testing"
	"time"

	"go-storefront/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateAndParseJWT(t *testing.T) {
	userID := primitive.NewObjectID().Hex()

	token, err := utils.GenerateJWT(userID, "deliveryman")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "deliveryman", claims.Role)
	assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := utils.ParseJWT("not.a.token")
	assert.Error(t, err)
}

func TestParseJWTRejectsTamperedToken(t *testing.T) {
	token, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), "buyer")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = utils.ParseJWT(tampered)
	assert.Error(t, err)
}

func TestTokenExpiryDefault(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "")
	assert.Equal(t, utils.DefaultTokenExpiry, utils.TokenExpiry())
}

func TestTokenExpiryFromEnv(t *testing.T) {
	t.Setenv("JWT_EXPIRY_HOURS", "48")
	assert.Equal(t, 48*time.Hour, utils.TokenExpiry())
}
