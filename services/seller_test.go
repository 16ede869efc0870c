package services_test

import (
	"testing"

	"go-storefront/models"
	"go-storefront/services"

	"github.com/stretchr/testify/assert"
)

func TestCanApply(t *testing.T) {
	t.Run("user without application", func(t *testing.T) {
		assert.NoError(t, services.CanApply(models.User{Role: models.RoleBuyer}))
	})

	t.Run("user with pending application", func(t *testing.T) {
		u := models.User{SellerInfo: &models.SellerInfo{Status: models.SellerStatusPending}}
		assert.ErrorIs(t, services.CanApply(u), services.ErrAlreadyApplied)
	})

	t.Run("approved seller", func(t *testing.T) {
		u := models.User{Role: models.RoleSeller, SellerInfo: &models.SellerInfo{Status: models.SellerStatusApproved}}
		assert.ErrorIs(t, services.CanApply(u), services.ErrAlreadyApplied)
	})
}

func TestCanApprove(t *testing.T) {
	t.Run("pending application", func(t *testing.T) {
		u := models.User{SellerInfo: &models.SellerInfo{Status: models.SellerStatusPending}}
		assert.NoError(t, services.CanApprove(u))
	})

	t.Run("no application", func(t *testing.T) {
		assert.ErrorIs(t, services.CanApprove(models.User{}), services.ErrNotPending)
	})

	t.Run("already approved", func(t *testing.T) {
		u := models.User{SellerInfo: &models.SellerInfo{Status: models.SellerStatusApproved}}
		assert.ErrorIs(t, services.CanApprove(u), services.ErrNotPending)
	})
}
