package models_test

import (
	"testing"

	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecomputeTotals(t *testing.T) {
	t.Run("single item", func(t *testing.T) {
		cart := models.Cart{Items: []models.CartItem{
			{ProductID: primitive.NewObjectID(), Quantity: 2, Price: 10},
		}}
		cart.RecomputeTotals()

		assert.Equal(t, 2, cart.TotalItems)
		assert.Equal(t, 20.0, cart.TotalPrice)
	})

	t.Run("multiple items", func(t *testing.T) {
		cart := models.Cart{Items: []models.CartItem{
			{ProductID: primitive.NewObjectID(), Quantity: 2, Price: 10},
			{ProductID: primitive.NewObjectID(), Quantity: 1, Price: 5.5},
			{ProductID: primitive.NewObjectID(), Quantity: 3, Price: 2},
		}}
		cart.RecomputeTotals()

		assert.Equal(t, 6, cart.TotalItems)
		assert.InDelta(t, 31.5, cart.TotalPrice, 1e-9)
	})

	t.Run("empty cart", func(t *testing.T) {
		cart := models.Cart{TotalItems: 99, TotalPrice: 99}
		cart.RecomputeTotals()

		assert.Equal(t, 0, cart.TotalItems)
		assert.Equal(t, 0.0, cart.TotalPrice)
	})

	t.Run("recompute is idempotent", func(t *testing.T) {
		cart := models.Cart{Items: []models.CartItem{
			{ProductID: primitive.NewObjectID(), Quantity: 4, Price: 3.25},
		}}
		cart.RecomputeTotals()
		firstItems, firstPrice := cart.TotalItems, cart.TotalPrice

		cart.RecomputeTotals()
		assert.Equal(t, firstItems, cart.TotalItems)
		assert.Equal(t, firstPrice, cart.TotalPrice)
	})
}
