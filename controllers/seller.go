package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-storefront/models"
	"go-storefront/services"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SellerController handles the lightweight seller registration endpoint.
// It drives the same application state machine as ApplySeller.
type SellerController struct {
	SellerSvc *services.SellerService
	Logger    *zap.Logger
}

// NewSellerController creates a new SellerController
func NewSellerController(sellerSvc *services.SellerService, logger *zap.Logger) *SellerController {
	return &SellerController{SellerSvc: sellerSvc, Logger: logger}
}

type registerSellerRequest struct {
	UserID      string `json:"userId" validate:"required"`
	ShopName    string `json:"shopName" validate:"required"`
	Description string `json:"description"`
}

// RegisterSeller files a pending seller application with shop details only
func (sc *SellerController) RegisterSeller(w http.ResponseWriter, r *http.Request) {
	var req registerSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := sc.SellerSvc.Apply(ctx, userID, services.SellerApplication{
		ShopName:    req.ShopName,
		Description: req.Description,
	})
	if err != nil {
		switch err {
		case services.ErrNotFound:
			utils.RespondError(w, http.StatusNotFound, "User not found")
		case services.ErrAlreadyApplied:
			utils.RespondError(w, http.StatusBadRequest, "User is already a seller")
		default:
			sc.Logger.Error("seller registration failed", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "Error registering seller")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"seller": map[string]interface{}{
			"id":          user.ID.Hex(),
			"shopName":    user.SellerInfo.ShopName,
			"description": user.SellerInfo.Description,
			"approved":    user.SellerInfo.Status == models.SellerStatusApproved,
		},
	})
}
