package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// OrderController handles checkout and the buyer's order lifecycle
type OrderController struct {
	Orders       *mongo.Collection
	Carts        *mongo.Collection
	Products     *mongo.Collection
	Users        *mongo.Collection
	EmailService *utils.EmailService
	Logger       *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService, logger *zap.Logger) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		Orders:       db.Collection("orders"),
		Carts:        db.Collection("carts"),
		Products:     db.Collection("products"),
		Users:        db.Collection("users"),
		EmailService: emailService,
		Logger:       logger,
	}
}

// CreateOrder creates a new order from the user's cart
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := oc.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	var cart models.Cart
	if err := oc.Carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if len(cart.Items) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	// Check stock before committing anything.
	for _, item := range cart.Items {
		var product models.Product
		if err := oc.Products.FindOne(ctx, bson.M{"_id": item.ProductID}).Decode(&product); err != nil {
			utils.RespondError(w, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", item.ProductID.Hex()))
			return
		}
		if product.Stock < item.Quantity {
			utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for product: %s", product.Name))
			return
		}
	}

	for _, item := range cart.Items {
		_, err := oc.Products.UpdateOne(ctx, bson.M{"_id": item.ProductID}, bson.M{
			"$inc": bson.M{"stock": -item.Quantity},
		})
		if err != nil {
			oc.Logger.Error("failed to decrement stock", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update product stock")
			return
		}
	}

	cart.RecomputeTotals()
	now := time.Now()
	order := models.Order{
		UserID:         userID,
		Items:          cart.Items,
		TotalPrice:     cart.TotalPrice,
		DeliveryStatus: models.DeliveryStatusPending,
		ReturnRequest:  models.ReturnNone,
		ScheduledDate:  now.AddDate(0, 0, 10),
		CreatedAt:      now,
	}

	result, err := oc.Orders.InsertOne(ctx, order)
	if err != nil {
		oc.Logger.Error("failed to create order", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	orderID := result.InsertedID.(primitive.ObjectID)

	if _, err := oc.Carts.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		oc.Logger.Error("failed to clear cart", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	go func(email, name string, total float64) {
		if err := oc.EmailService.SendOrderConfirmationEmail(email, name, orderID.Hex(), total); err != nil {
			oc.Logger.Error("failed to send order confirmation", zap.String("email", email), zap.Error(err))
		}
	}(user.Email, user.Name, cart.TotalPrice)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"orderId":    orderID.Hex(),
		"totalPrice": cart.TotalPrice,
		"message":    "Order created successfully",
	})
}

// GetOrders retrieves all orders for the authenticated user
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := oc.Orders.Find(ctx, bson.M{"user_id": userID}, findOpts)
	if err != nil {
		oc.Logger.Error("failed to list orders", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		oc.Logger.Error("failed to read orders", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// RequestReturn opens a return request on a delivered order
func (oc *OrderController) RequestReturn(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := oc.Orders.UpdateOne(ctx,
		bson.M{
			"_id":             orderID,
			"user_id":         userID,
			"delivery_status": models.DeliveryStatusDelivered,
			"return_request":  models.ReturnNone,
		},
		bson.M{"$set": bson.M{"return_request": models.ReturnPending}},
	)
	if err != nil {
		oc.Logger.Error("failed to open return request", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error requesting return")
		return
	}
	if res.MatchedCount == 0 {
		if err := oc.Orders.FindOne(ctx, bson.M{"_id": orderID, "user_id": userID}).Err(); err == mongo.ErrNoDocuments {
			utils.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.RespondError(w, http.StatusBadRequest, "Order is not eligible for return")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Return requested"})
}
