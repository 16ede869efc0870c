package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)

	middleware.AuthMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Token abc")

	middleware.AuthMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	middleware.AuthMiddleware(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareAttachesClaims(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	token, err := utils.GenerateJWT(userID, models.RoleAdmin)
	require.NoError(t, err)

	var got *utils.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok)
		got = claims
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	middleware.AuthMiddleware(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestRequireRole(t *testing.T) {
	guarded := middleware.AuthMiddleware(middleware.DeliveryManMiddleware(okHandler()))

	t.Run("wrong role is forbidden", func(t *testing.T) {
		token, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), models.RoleBuyer)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/delivery/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		guarded.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching role passes", func(t *testing.T) {
		token, err := utils.GenerateJWT(primitive.NewObjectID().Hex(), models.RoleDeliveryMan)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/delivery/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		guarded.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
