package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery statuses
const (
	DeliveryStatusPending        = "pending"
	DeliveryStatusOutForDelivery = "out-for-delivery"
	DeliveryStatusDelivered      = "delivered"
)

// Return-request states
const (
	ReturnNone      = "none"
	ReturnPending   = "pending"
	ReturnApproved  = "approved"
	ReturnRejected  = "rejected"
	ReturnCompleted = "completed"
)

// Order represents a user's order. An order with no AssignedTo value is
// unassigned and eligible for the delivery-assignment workflow.
type Order struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID  `bson:"user_id" json:"userId"`
	Items          []CartItem          `bson:"items" json:"items"`
	TotalPrice     float64             `bson:"total_price" json:"totalPrice"`
	AssignedTo     *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	DeliveryStatus string              `bson:"delivery_status" json:"deliveryStatus"`
	ReturnRequest  string              `bson:"return_request" json:"returnRequest"`
	ScheduledDate  time.Time           `bson:"scheduled_date" json:"scheduledDate"`
	CreatedAt      time.Time           `bson:"created_at" json:"createdAt"`
}

// IsUnassigned reports whether the order has no delivery man yet.
func (o Order) IsUnassigned() bool {
	return o.AssignedTo == nil
}
