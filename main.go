package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"go-storefront/controllers"
	"go-storefront/jobs"
	"go-storefront/routes"
	"go-storefront/services"
	"go-storefront/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Fatal("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()

	if err := utils.EnsureIndexes(context.Background(), client); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	// Initialize services
	otpService := services.NewOtpService(client, utils.DatabaseName, logger)
	sellerService := services.NewSellerService(client, utils.DatabaseName, logger)
	reviewService := services.NewReviewService(client, utils.DatabaseName, logger)
	assignmentService := services.NewAssignmentService(client, utils.DatabaseName, logger)
	cleanupService := services.NewCleanupService(client, utils.DatabaseName, logger)

	// Initialize controllers
	userController := controllers.NewUserController(client, otpService, sellerService, emailService, logger)
	sellerController := controllers.NewSellerController(sellerService, logger)
	productController := controllers.NewProductController(client, reviewService, logger)
	cartController := controllers.NewCartController(client, logger)
	orderController := controllers.NewOrderController(client, emailService, logger)
	adminController := controllers.NewAdminController(client, assignmentService, sellerService, cleanupService, logger)
	deliveryController := controllers.NewDeliveryController(client, assignmentService, logger)

	// Start the scheduled cleanup job
	cleanupJob := jobs.NewCleanupJob(cleanupService, logger)
	if err := cleanupJob.Start(); err != nil {
		logger.Fatal("failed to start cleanup job", zap.Error(err))
	}
	defer cleanupJob.Stop()

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, sellerController, productController, cartController, orderController, adminController, deliveryController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logger.Info("server is running", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
