package services

import (
	"context"
	"time"

	"go-storefront/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MaxActiveAssignments is the capacity limit per delivery man. A delivery
// man at this many active orders is not eligible for new assignments.
const MaxActiveAssignments = 5

// EligibleForAssignment reports whether a user can take another delivery:
// deliveryman role, marked available, and under the assignment limit.
func EligibleForAssignment(u models.User) bool {
	if u.Role != models.RoleDeliveryMan || u.DeliveryManInfo == nil {
		return false
	}
	info := u.DeliveryManInfo
	return info.AvailableForDelivery && len(info.AssignedOrders) < MaxActiveAssignments
}

// UnassignedOrder is an order awaiting assignment, enriched with the
// buyer's contact details for the admin view.
type UnassignedOrder struct {
	models.Order `bson:",inline"`
	BuyerName    string `json:"buyerName"`
	BuyerEmail   string `json:"buyerEmail"`
}

// DeliveryManView exposes the assignment metadata of an eligible
// delivery man.
type DeliveryManView struct {
	ID             primitive.ObjectID   `json:"id"`
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	AssignedOrders []primitive.ObjectID `json:"assignedOrders"`
	ActiveCount    int                  `json:"activeCount"`
}

// AssignmentService matches unassigned orders with eligible delivery men.
type AssignmentService struct {
	Orders *mongo.Collection
	Users  *mongo.Collection
	Logger *zap.Logger
}

// NewAssignmentService creates an AssignmentService over the shared client.
func NewAssignmentService(client *mongo.Client, dbName string, logger *zap.Logger) *AssignmentService {
	db := client.Database(dbName)
	return &AssignmentService{
		Orders: db.Collection("orders"),
		Users:  db.Collection("users"),
		Logger: logger,
	}
}

// eligibleFilter is the store-side form of EligibleForAssignment.
func eligibleFilter() bson.M {
	return bson.M{
		"role": models.RoleDeliveryMan,
		"deliveryman_info.available_for_delivery": true,
		"$expr": bson.M{
			"$lt": bson.A{
				bson.M{"$size": bson.M{"$ifNull": bson.A{"$deliveryman_info.assigned_orders", bson.A{}}}},
				MaxActiveAssignments,
			},
		},
	}
}

// Plan returns the unassigned orders (newest first, enriched with buyer
// details) and the eligible delivery men. It is a read-only planning
// query; pairing happens in Assign. Either both sets are returned or
// neither is.
func (s *AssignmentService) Plan(ctx context.Context) ([]UnassignedOrder, []DeliveryManView, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.Orders.Find(ctx, bson.M{"assigned_to": bson.M{"$exists": false}}, findOpts)
	if err != nil {
		return nil, nil, err
	}
	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, nil, err
	}

	unassigned := make([]UnassignedOrder, 0, len(orders))
	for _, order := range orders {
		var buyer models.User
		err := s.Users.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&buyer)
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, nil, err
		}
		unassigned = append(unassigned, UnassignedOrder{
			Order:      order,
			BuyerName:  buyer.Name,
			BuyerEmail: buyer.Email,
		})
	}

	cursor, err = s.Users.Find(ctx, eligibleFilter())
	if err != nil {
		return nil, nil, err
	}
	var deliveryMen []models.User
	if err := cursor.All(ctx, &deliveryMen); err != nil {
		return nil, nil, err
	}

	views := make([]DeliveryManView, 0, len(deliveryMen))
	for _, dm := range deliveryMen {
		view := DeliveryManView{ID: dm.ID, Name: dm.Name, Email: dm.Email}
		if dm.DeliveryManInfo != nil {
			view.AssignedOrders = dm.DeliveryManInfo.AssignedOrders
			view.ActiveCount = len(dm.DeliveryManInfo.AssignedOrders)
		}
		views = append(views, view)
	}

	return unassigned, views, nil
}

// Assign pairs one order with one delivery man. Both sides are guarded by
// conditional updates so that concurrent attempts cannot assign an order
// twice or push a delivery man past capacity.
func (s *AssignmentService) Assign(ctx context.Context, orderID, deliveryManID primitive.ObjectID) error {
	filter := eligibleFilter()
	filter["_id"] = deliveryManID

	res := s.Users.FindOneAndUpdate(ctx, filter, bson.M{
		"$push": bson.M{"deliveryman_info.assigned_orders": orderID},
	})
	if res.Err() == mongo.ErrNoDocuments {
		// Distinguish an unknown user from one without capacity.
		if err := s.Users.FindOne(ctx, bson.M{"_id": deliveryManID}).Err(); err == mongo.ErrNoDocuments {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return ErrNoCapacity
	} else if res.Err() != nil {
		return res.Err()
	}

	orderRes := s.Orders.FindOneAndUpdate(ctx,
		bson.M{"_id": orderID, "assigned_to": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"assigned_to": deliveryManID}},
	)
	if orderRes.Err() != nil {
		// Roll back the reservation on the delivery man.
		_, pullErr := s.Users.UpdateOne(ctx, bson.M{"_id": deliveryManID}, bson.M{
			"$pull": bson.M{"deliveryman_info.assigned_orders": orderID},
		})
		if pullErr != nil {
			s.Logger.Error("failed to roll back assignment reservation",
				zap.String("deliveryMan", deliveryManID.Hex()),
				zap.String("order", orderID.Hex()),
				zap.Error(pullErr))
		}
		if orderRes.Err() == mongo.ErrNoDocuments {
			if err := s.Orders.FindOne(ctx, bson.M{"_id": orderID}).Err(); err == mongo.ErrNoDocuments {
				return ErrNotFound
			} else if err != nil {
				return err
			}
			return ErrAlreadyAssigned
		}
		return orderRes.Err()
	}

	return nil
}

// CompleteDelivery marks an order delivered and releases the slot on the
// assigned delivery man.
func (s *AssignmentService) CompleteDelivery(ctx context.Context, orderID, deliveryManID primitive.ObjectID) error {
	res, err := s.Orders.UpdateOne(ctx,
		bson.M{"_id": orderID, "assigned_to": deliveryManID},
		bson.M{"$set": bson.M{"delivery_status": models.DeliveryStatusDelivered, "delivered_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	_, err = s.Users.UpdateOne(ctx, bson.M{"_id": deliveryManID}, bson.M{
		"$pull": bson.M{"deliveryman_info.assigned_orders": orderID},
	})
	return err
}
