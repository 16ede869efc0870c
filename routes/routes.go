package routes

import (
	"net/http"

	"go-storefront/controllers"
	"go-storefront/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	sellerController *controllers.SellerController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
	adminController *controllers.AdminController,
	deliveryController *controllers.DeliveryController,
) {
	auth := middleware.AuthMiddleware

	// Public routes
	router.HandleFunc("/auth/register", userController.Register).Methods("POST")
	router.HandleFunc("/auth/login", userController.Login).Methods("POST")
	router.HandleFunc("/auth/verify-otp", userController.VerifyOtp).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")

	// Authenticated routes
	router.Handle("/profile", auth(http.HandlerFunc(userController.GetProfile))).Methods("GET")
	router.Handle("/users/apply-seller", auth(http.HandlerFunc(userController.ApplySeller))).Methods("POST")
	router.Handle("/seller/register", auth(http.HandlerFunc(sellerController.RegisterSeller))).Methods("POST")
	router.Handle("/products", auth(http.HandlerFunc(productController.CreateProduct))).Methods("POST")
	router.Handle("/products/{id}", auth(http.HandlerFunc(productController.UpdateProduct))).Methods("PUT")
	router.Handle("/products/{id}", auth(http.HandlerFunc(productController.DeleteProduct))).Methods("DELETE")
	router.Handle("/products/{id}/reviews", auth(http.HandlerFunc(productController.AddReview))).Methods("POST")
	router.Handle("/cart", auth(http.HandlerFunc(cartController.AddToCart))).Methods("POST")
	router.Handle("/cart", auth(http.HandlerFunc(cartController.GetCart))).Methods("GET")
	router.Handle("/cart", auth(http.HandlerFunc(cartController.RemoveFromCart))).Methods("DELETE")
	router.Handle("/order", auth(http.HandlerFunc(orderController.CreateOrder))).Methods("POST")
	router.Handle("/orders", auth(http.HandlerFunc(orderController.GetOrders))).Methods("GET")
	router.Handle("/orders/{id}/return", auth(http.HandlerFunc(orderController.RequestReturn))).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/orders/unassigned", adminController.GetUnassignedOrders).Methods("GET")
	admin.HandleFunc("/orders/assign", adminController.AssignOrder).Methods("POST")
	admin.HandleFunc("/sellers/approve", adminController.ApproveSeller).Methods("POST")
	admin.HandleFunc("/sellers/pending", adminController.GetPendingSellers).Methods("GET")
	admin.HandleFunc("/returns/{id}", adminController.UpdateReturnStatus).Methods("PUT")
	admin.HandleFunc("/cleanup", adminController.RunCleanup).Methods("POST")

	// Delivery routes
	delivery := router.PathPrefix("/delivery").Subrouter()
	delivery.Use(middleware.AuthMiddleware)
	delivery.Use(middleware.DeliveryManMiddleware)
	delivery.HandleFunc("/orders", deliveryController.GetMyOrders).Methods("GET")
	delivery.HandleFunc("/availability", deliveryController.SetAvailability).Methods("PUT")
	delivery.HandleFunc("/orders/{id}/status", deliveryController.UpdateDeliveryStatus).Methods("PUT")
}
