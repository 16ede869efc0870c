package services_test

import (
	"testing"
	"time"

	"go-storefront/models"
	"go-storefront/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsertRatingAppendsForNewUser(t *testing.T) {
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	ratings := []models.Rating{{UserID: userA, Rating: 4, Review: "good"}}

	updated, replaced := services.UpsertRating(ratings, models.Rating{UserID: userB, Rating: 2, Review: "meh"})

	assert.False(t, replaced)
	assert.Len(t, updated, 2)
}

func TestUpsertRatingReplacesNotAppends(t *testing.T) {
	user := primitive.NewObjectID()
	ratings := []models.Rating{{UserID: user, Rating: 4, Review: "good", Date: time.Now().Add(-time.Hour)}}

	second := models.Rating{UserID: user, Rating: 1, Review: "changed my mind", Date: time.Now()}
	updated, replaced := services.UpsertRating(ratings, second)

	assert.True(t, replaced)
	require.Len(t, updated, 1)
	assert.Equal(t, 1.0, updated[0].Rating)
	assert.Equal(t, "changed my mind", updated[0].Review)

	// The review count must stay constant across the second submission.
	_, count := services.RatingAggregate(updated)
	assert.Equal(t, 1, count)
}

func TestRatingAggregate(t *testing.T) {
	t.Run("empty ratings", func(t *testing.T) {
		avg, count := services.RatingAggregate(nil)
		assert.Equal(t, 0.0, avg)
		assert.Equal(t, 0, count)
	})

	t.Run("mean of all ratings", func(t *testing.T) {
		ratings := []models.Rating{
			{UserID: primitive.NewObjectID(), Rating: 5},
			{UserID: primitive.NewObjectID(), Rating: 4},
			{UserID: primitive.NewObjectID(), Rating: 3},
		}
		avg, count := services.RatingAggregate(ratings)
		assert.InDelta(t, 4.0, avg, 1e-9)
		assert.Equal(t, 3, count)
	})
}
