package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-storefront/models"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AdminController handles assignment planning, seller approval, return
// review and the manual cleanup trigger.
type AdminController struct {
	AssignmentSvc *services.AssignmentService
	SellerSvc     *services.SellerService
	CleanupSvc    *services.CleanupService
	Orders        *mongo.Collection
	Logger        *zap.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(client *mongo.Client, assignmentSvc *services.AssignmentService, sellerSvc *services.SellerService, cleanupSvc *services.CleanupService, logger *zap.Logger) *AdminController {
	return &AdminController{
		AssignmentSvc: assignmentSvc,
		SellerSvc:     sellerSvc,
		CleanupSvc:    cleanupSvc,
		Orders:        client.Database(utils.DatabaseName).Collection("orders"),
		Logger:        logger,
	}
}

// GetUnassignedOrders returns the assignment planning view: unassigned
// orders and eligible delivery men. Empty sets are a success, not an
// error.
func (ac *AdminController) GetUnassignedOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, deliveryMen, err := ac.AssignmentSvc.Plan(ctx)
	if err != nil {
		ac.Logger.Error("assignment planning query failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching unassigned orders")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"orders":      orders,
		"deliveryMen": deliveryMen,
	})
}

type assignOrderRequest struct {
	OrderID       string `json:"orderId" validate:"required"`
	DeliveryManID string `json:"deliveryManId" validate:"required"`
}

// AssignOrder pairs one order with one delivery man
func (ac *AdminController) AssignOrder(w http.ResponseWriter, r *http.Request) {
	var req assignOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}
	deliveryManID, err := primitive.ObjectIDFromHex(req.DeliveryManID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid delivery man ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := ac.AssignmentSvc.Assign(ctx, orderID, deliveryManID); err != nil {
		switch err {
		case services.ErrNotFound:
			utils.RespondError(w, http.StatusNotFound, "Order or delivery man not found")
		case services.ErrNoCapacity:
			utils.RespondError(w, http.StatusBadRequest, "Delivery man is not eligible for assignment")
		case services.ErrAlreadyAssigned:
			utils.RespondError(w, http.StatusBadRequest, "Order is already assigned")
		default:
			ac.Logger.Error("assignment failed", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "Error assigning order")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Order assigned"})
}

type approveSellerRequest struct {
	SellerID string `json:"sellerId" validate:"required"`
}

// ApproveSeller approves a pending seller application
func (ac *AdminController) ApproveSeller(w http.ResponseWriter, r *http.Request) {
	var req approveSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	sellerID, err := primitive.ObjectIDFromHex(req.SellerID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid seller ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := ac.SellerSvc.Approve(ctx, sellerID); err != nil {
		switch err {
		case services.ErrNotFound:
			utils.RespondError(w, http.StatusNotFound, "Seller not found")
		case services.ErrNotPending:
			utils.RespondError(w, http.StatusBadRequest, "No pending seller application")
		default:
			ac.Logger.Error("seller approval failed", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "Error approving seller")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Seller approved"})
}

// GetPendingSellers lists seller applications awaiting review
func (ac *AdminController) GetPendingSellers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sellers, err := ac.SellerSvc.PendingApplications(ctx)
	if err != nil {
		ac.Logger.Error("failed to list pending sellers", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching pending sellers")
		return
	}

	for i := range sellers {
		sellers[i].Password = ""
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"sellers": sellers})
}

type updateReturnRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected completed"`
}

// UpdateReturnStatus resolves a return request on an order
func (ac *AdminController) UpdateReturnStatus(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req updateReturnRequest
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

	res, err := ac.Orders.UpdateOne(ctx,
		bson.M{"_id": orderID, "return_request": bson.M{"$ne": models.ReturnNone}},
		bson.M{"$set": bson.M{"return_request": req.Status}},
	)
	if err != nil {
		ac.Logger.Error("failed to update return status", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error updating return status")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Order with an open return not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Return status updated"})
}

// RunCleanup triggers one cleanup sweep and reports the count deleted
func (ac *AdminController) RunCleanup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	deleted, err := ac.CleanupSvc.Run(ctx)
	if err != nil {
		ac.Logger.Error("cleanup sweep failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Cleanup failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"deleted": deleted})
}
