package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents an item in the cart
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Price     float64            `bson:"price" json:"price"`
}

// Cart represents a user's shopping cart. TotalItems and TotalPrice are
// always derived from Items; they are recomputed on every persist and
// never written independently.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	Items      []CartItem         `bson:"items" json:"items"`
	TotalItems int                `bson:"total_items" json:"totalItems"`
	TotalPrice float64            `bson:"total_price" json:"totalPrice"`
}

// RecomputeTotals rewrites TotalItems and TotalPrice from the item list.
func (c *Cart) RecomputeTotals() {
	c.TotalItems = 0
	c.TotalPrice = 0
	for _, item := range c.Items {
		c.TotalItems += item.Quantity
		c.TotalPrice += item.Price * float64(item.Quantity)
	}
}
