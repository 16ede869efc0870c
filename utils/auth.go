package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT Secret Key, loaded from the environment at startup.
var JwtKey = []byte("your_secret_key")

// DefaultTokenExpiry is used when JWT_EXPIRY_HOURS is unset. All login
// paths share this single knob.
const DefaultTokenExpiry = 7 * 24 * time.Hour

// Claims represents the JWT claims carried by every bearer token.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// TokenExpiry resolves the configured token lifetime.
func TokenExpiry() time.Duration {
	if hours, err := strconv.Atoi(os.Getenv("JWT_EXPIRY_HOURS")); err == nil && hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return DefaultTokenExpiry
}

// GenerateJWT generates a signed token for a user
func GenerateJWT(userID, role string) (string, error) {
	expirationTime := time.Now().Add(TokenExpiry())
	claims := &Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseJWT verifies a token string and returns its claims.
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
