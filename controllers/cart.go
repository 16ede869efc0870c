package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CartController handles cart-related requests
type CartController struct {
	Carts    *mongo.Collection
	Products *mongo.Collection
	Logger   *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client, logger *zap.Logger) *CartController {
	db := client.Database(utils.DatabaseName)
	return &CartController{
		Carts:    db.Collection("carts"),
		Products: db.Collection("products"),
		Logger:   logger,
	}
}

func (cc *CartController) userID(r *http.Request) (primitive.ObjectID, bool) {
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

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// AddToCart adds a product to the user's cart. Totals are recomputed from
// the item list on every persist.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := cc.Products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	item := models.CartItem{
		ProductID: productID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		Price:     product.Price,
	}

	var cart models.Cart
	err = cc.Carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		cart = models.Cart{UserID: userID, Items: []models.CartItem{item}}
		cart.RecomputeTotals()
		if _, err := cc.Carts.InsertOne(ctx, cart); err != nil {
			cc.Logger.Error("failed to create cart", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "Error creating cart")
			return
		}
		utils.RespondJSON(w, http.StatusOK, cart)
		return
	} else if err != nil {
		cc.Logger.Error("failed to load cart", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	merged := false
	for i, existing := range cart.Items {
		if existing.ProductID == item.ProductID && existing.Size == item.Size && existing.Color == item.Color {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}
	cart.RecomputeTotals()

	_, err = cc.Carts.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{
		"items":       cart.Items,
		"total_items": cart.TotalItems,
		"total_price": cart.TotalPrice,
	}})
	if err != nil {
		cc.Logger.Error("failed to update cart", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}

// RemoveFromCart removes a product variant from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProductID string `json:"productId"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.Carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}

	updatedItems := []models.CartItem{}
	for _, item := range cart.Items {
		if item.ProductID == productID && item.Size == req.Size && item.Color == req.Color {
			continue
		}
		updatedItems = append(updatedItems, item)
	}
	cart.Items = updatedItems
	cart.RecomputeTotals()

	_, err = cc.Carts.UpdateOne(ctx, bson.M{"_id": cart.ID}, bson.M{"$set": bson.M{
		"items":       cart.Items,
		"total_items": cart.TotalItems,
		"total_price": cart.TotalPrice,
	}})
	if err != nil {
		cc.Logger.Error("failed to update cart", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}

// GetCart retrieves the user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := cc.userID(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err := cc.Carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		utils.RespondJSON(w, http.StatusOK, models.Cart{UserID: userID, Items: []models.CartItem{}})
		return
	} else if err != nil {
		cc.Logger.Error("failed to load cart", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, cart)
}
