package services

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UpsertRating replaces the user's existing rating in place or appends a
// new one. Returns the new slice and whether an existing entry was
// replaced.
func UpsertRating(ratings []models.Rating, r models.Rating) ([]models.Rating, bool) {
	for i, existing := range ratings {
		if existing.UserID == r.UserID {
			ratings[i] = r
			return ratings, true
		}
	}
	return append(ratings, r), false
}

// RatingAggregate computes the mean rating and the review count from the
// full ratings collection.
func RatingAggregate(ratings []models.Rating) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r.Rating
	}
	return sum / float64(len(ratings)), len(ratings)
}

// ReviewService handles review submission and aggregate recomputation.
type ReviewService struct {
	Products *mongo.Collection
	Logger   *zap.Logger
}

// NewReviewService creates a ReviewService over the shared client.
func NewReviewService(client *mongo.Client, dbName string, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		Products: client.Database(dbName).Collection("products"),
		Logger:   logger,
	}
}

// Submit upserts a rating on the product and recomputes averageRating and
// numReviews from the full ratings list. The overwrite and the append are
// both guarded conditional updates, so a concurrent double submission by
// the same user cannot append twice.
func (s *ReviewService) Submit(ctx context.Context, productID, userID primitive.ObjectID, rating float64, review string) (*models.Product, error) {
	entry := models.Rating{
		UserID: userID,
		Rating: rating,
		Review: review,
		Date:   time.Now(),
	}

	// Overwrite in place if the user already reviewed this product.
	res, err := s.Products.UpdateOne(ctx,
		bson.M{"_id": productID, "ratings.user_id": userID},
		bson.M{"$set": bson.M{
			"ratings.$.rating": entry.Rating,
			"ratings.$.review": entry.Review,
			"ratings.$.date":   entry.Date,
		}},
	)
	if err != nil {
		return nil, err
	}

	if res.MatchedCount == 0 {
		// Append, but only while no rating by this user exists.
		res, err = s.Products.UpdateOne(ctx,
			bson.M{"_id": productID, "ratings.user_id": bson.M{"$ne": userID}},
			bson.M{"$push": bson.M{"ratings": entry}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			// Either the product is gone or a concurrent submission won
			// the append; the recompute below settles the latter.
			if err := s.Products.FindOne(ctx, bson.M{"_id": productID}).Err(); err == mongo.ErrNoDocuments {
				return nil, ErrNotFound
			} else if err != nil {
				return nil, err
			}
		}
	}

	var product models.Product
	if err := s.Products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	avg, count := RatingAggregate(product.Ratings)
	_, err = s.Products.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$set": bson.M{"average_rating": avg, "num_reviews": count},
	})
	if err != nil {
		return nil, err
	}

	product.AverageRating = avg
	product.NumReviews = count
	return &product, nil
}
