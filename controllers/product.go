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

// ProductController handles catalog and review requests
type ProductController struct {
	Collection *mongo.Collection
	ReviewSvc  *services.ReviewService
	Logger     *zap.Logger
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client, reviewSvc *services.ReviewService, logger *zap.Logger) *ProductController {
	return &ProductController{
		Collection: client.Database(utils.DatabaseName).Collection("products"),
		ReviewSvc:  reviewSvc,
		Logger:     logger,
	}
}

// CreateProduct handles adding a new product (seller/admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	product.Ratings = []models.Rating{}
	product.AverageRating = 0
	product.NumReviews = 0
	product.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		pc.Logger.Error("failed to create product", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error creating product")
		return
	}

	product.ID = result.InsertedID.(primitive.ObjectID)
	utils.RespondJSON(w, http.StatusCreated, product)
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := pc.Collection.Find(ctx, bson.M{})
	if err != nil {
		pc.Logger.Error("failed to list products", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		pc.Logger.Error("failed to read products", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	utils.RespondJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, product)
}

// UpdateProduct handles updating a product (seller/admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":        input.Name,
		"description": input.Description,
		"price":       input.Price,
		"stock":       input.Stock,
	}})
	if err != nil {
		pc.Logger.Error("failed to update product", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error updating product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

// DeleteProduct handles deleting a product (seller/admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		pc.Logger.Error("failed to delete product", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

type reviewRequest struct {
	UserID string  `json:"userId"`
	Rating float64 `json:"rating"`
	Review string  `json:"review"`
}

// AddReview submits a review on a product. A second review by the same
// user replaces the first.
func (pc *ProductController) AddReview(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.UserID == "" || req.Rating == 0 {
		utils.RespondError(w, http.StatusBadRequest, "userId and rating are required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := pc.ReviewSvc.Submit(ctx, productID, userID, req.Rating, req.Review)
	if err != nil {
		if err == services.ErrNotFound {
			utils.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		pc.Logger.Error("failed to submit review", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error submitting review")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"averageRating": product.AverageRating,
		"numReviews":    product.NumReviews,
	})
}
