package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DeliveryController handles the delivery man's side of the workflow
type DeliveryController struct {
	Orders        *mongo.Collection
	Users         *mongo.Collection
	AssignmentSvc *services.AssignmentService
	Logger        *zap.Logger
}

// NewDeliveryController creates a new DeliveryController
func NewDeliveryController(client *mongo.Client, assignmentSvc *services.AssignmentService, logger *zap.Logger) *DeliveryController {
	db := client.Database(utils.DatabaseName)
	return &DeliveryController{
		Orders:        db.Collection("orders"),
		Users:         db.Collection("users"),
		AssignmentSvc: assignmentSvc,
		Logger:        logger,
	}
}

func (dc *DeliveryController) deliveryManID(r *http.Request) (primitive.ObjectID, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetMyOrders lists the orders assigned to the authenticated delivery man
func (dc *DeliveryController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	deliveryManID, ok := dc.deliveryManID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := dc.Orders.Find(ctx, bson.M{"assigned_to": deliveryManID}, findOpts)
	if err != nil {
		dc.Logger.Error("failed to list assigned orders", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		dc.Logger.Error("failed to read assigned orders", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

// SetAvailability toggles the delivery man's availability flag
func (dc *DeliveryController) SetAvailability(w http.ResponseWriter, r *http.Request) {
	deliveryManID, ok := dc.deliveryManID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Available == nil {
		utils.RespondError(w, http.StatusBadRequest, "available is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := dc.Users.UpdateOne(ctx,
		bson.M{"_id": deliveryManID, "role": models.RoleDeliveryMan},
		bson.M{"$set": bson.M{"deliveryman_info.available_for_delivery": *req.Available}},
	)
	if err != nil {
		dc.Logger.Error("failed to set availability", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error updating availability")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Delivery man not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"available": *req.Available})
}

type deliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=out-for-delivery delivered"`
}

// UpdateDeliveryStatus advances the delivery status of an assigned order.
// Marking an order delivered releases the assignment slot.
func (dc *DeliveryController) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	deliveryManID, ok := dc.deliveryManID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req deliveryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if req.Status == models.DeliveryStatusDelivered {
		err = dc.AssignmentSvc.CompleteDelivery(ctx, orderID, deliveryManID)
		if err == services.ErrNotFound {
			utils.RespondError(w, http.StatusNotFound, "Assigned order not found")
			return
		} else if err != nil {
			dc.Logger.Error("failed to complete delivery", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "Error updating delivery status")
			return
		}
	} else {
		res, err := dc.Orders.UpdateOne(ctx,
			bson.M{"_id": orderID, "assigned_to": deliveryManID},
			bson.M{"$set": bson.M{"delivery_status": req.Status}},
		)
		if err != nil {
			dc.Logger.Error("failed to update delivery status", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "Error updating delivery status")
			return
		}
		if res.MatchedCount == 0 {
			utils.RespondError(w, http.StatusNotFound, "Assigned order not found")
			return
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Delivery status updated"})
}
