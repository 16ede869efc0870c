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

// SellerApplication is the input to a seller application.
type SellerApplication struct {
	ShopName       string
	Description    string
	BusinessType   string
	ProductsToSell string
}

// CanApply reports whether a user may submit a seller application.
// A user with any existing application (pending or approved) may not
// apply again.
func CanApply(u models.User) error {
	if u.SellerInfo != nil {
		return ErrAlreadyApplied
	}
	return nil
}

// CanApprove reports whether a user's application can be approved.
func CanApprove(u models.User) error {
	if u.SellerInfo == nil || u.SellerInfo.Status != models.SellerStatusPending {
		return ErrNotPending
	}
	return nil
}

// SellerService owns the seller lifecycle: none -> pending -> approved.
// Both application endpoints drive this one state machine.
type SellerService struct {
	Users  *mongo.Collection
	Logger *zap.Logger
}

// NewSellerService creates a SellerService over the shared client.
func NewSellerService(client *mongo.Client, dbName string, logger *zap.Logger) *SellerService {
	return &SellerService{
		Users:  client.Database(dbName).Collection("users"),
		Logger: logger,
	}
}

// Apply records a pending seller application on the user. The guard is
// part of the update filter, so two concurrent applications cannot both
// succeed.
func (s *SellerService) Apply(ctx context.Context, userID primitive.ObjectID, app SellerApplication) (*models.User, error) {
	info := models.SellerInfo{
		ShopName:       app.ShopName,
		Description:    app.Description,
		BusinessType:   app.BusinessType,
		ProductsToSell: app.ProductsToSell,
		Status:         models.SellerStatusPending,
		CreatedAt:      time.Now(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := s.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": userID, "seller_info": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"seller_info": info}},
		opts,
	)
	if res.Err() == mongo.ErrNoDocuments {
		if err := s.Users.FindOne(ctx, bson.M{"_id": userID}).Err(); err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		} else if err != nil {
			return nil, err
		}
		return nil, ErrAlreadyApplied
	} else if res.Err() != nil {
		return nil, res.Err()
	}

	var user models.User
	if err := res.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Approve transitions a pending application to approved and promotes the
// user to the seller role. Only the status and role fields change;
// the rest of the application survives untouched.
func (s *SellerService) Approve(ctx context.Context, sellerID primitive.ObjectID) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := s.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": sellerID, "seller_info.status": models.SellerStatusPending},
		bson.M{"$set": bson.M{
			"seller_info.status": models.SellerStatusApproved,
			"role":               models.RoleSeller,
		}},
		opts,
	)
	if res.Err() == mongo.ErrNoDocuments {
		if err := s.Users.FindOne(ctx, bson.M{"_id": sellerID}).Err(); err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		} else if err != nil {
			return nil, err
		}
		return nil, ErrNotPending
	} else if res.Err() != nil {
		return nil, res.Err()
	}

	var user models.User
	if err := res.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// PendingApplications lists users whose seller application awaits review.
func (s *SellerService) PendingApplications(ctx context.Context) ([]models.User, error) {
	cursor, err := s.Users.Find(ctx, bson.M{"seller_info.status": models.SellerStatusPending})
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
