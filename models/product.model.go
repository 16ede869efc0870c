package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is a single user review on a product. At most one rating per
// (product, user) pair; a second submission overwrites the first.
type Rating struct {
	UserID primitive.ObjectID `bson:"user_id" json:"userId"`
	Rating float64            `bson:"rating" json:"rating"`
	Review string             `bson:"review" json:"review"`
	Date   time.Time          `bson:"date" json:"date"`
}

// Product represents an item in the catalog
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Stock         int                `bson:"stock" json:"stock"`
	SellerID      primitive.ObjectID `bson:"seller_id,omitempty" json:"sellerId,omitempty"`
	Ratings       []Rating           `bson:"ratings" json:"ratings"`
	AverageRating float64            `bson:"average_rating" json:"averageRating"`
	NumReviews    int                `bson:"num_reviews" json:"numReviews"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
