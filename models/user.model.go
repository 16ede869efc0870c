package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleBuyer       = "buyer"
	RoleSeller      = "seller"
	RoleDeliveryMan = "deliveryman"
	RoleAdmin       = "admin"
)

// Seller application states. A user with no SellerInfo has never applied.
const (
	SellerStatusPending  = "pending"
	SellerStatusApproved = "approved"
)

// SellerInfo holds a user's seller application and shop metadata.
// Present only once an application exists.
type SellerInfo struct {
	ShopName       string    `bson:"shop_name" json:"shopName"`
	Description    string    `bson:"description" json:"description"`
	BusinessType   string    `bson:"business_type,omitempty" json:"businessType,omitempty"`
	ProductsToSell string    `bson:"products_to_sell,omitempty" json:"productsToSell,omitempty"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	AverageRating  float64   `bson:"average_rating" json:"averageRating"`
}

// DeliveryManInfo holds delivery-specific state for users with the
// deliveryman role.
type DeliveryManInfo struct {
	AvailableForDelivery bool                 `bson:"available_for_delivery" json:"availableForDelivery"`
	AssignedOrders       []primitive.ObjectID `bson:"assigned_orders" json:"assignedOrders"`
}

// User represents a user in the system
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password,omitempty" json:"-"`
	Role            string             `bson:"role" json:"role"`
	IsVerified      bool               `bson:"is_verified" json:"isVerified"`
	SellerInfo      *SellerInfo        `bson:"seller_info,omitempty" json:"sellerInfo,omitempty"`
	DeliveryManInfo *DeliveryManInfo   `bson:"deliveryman_info,omitempty" json:"deliverymanInfo,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}
