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

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

// UserController handles registration, login and profile requests
type UserController struct {
	Users        *mongo.Collection
	OtpService   *services.OtpService
	SellerSvc    *services.SellerService
	EmailService *utils.EmailService
	Logger       *zap.Logger
}

// NewUserController creates a new UserController
func NewUserController(client *mongo.Client, otpService *services.OtpService, sellerSvc *services.SellerService, emailService *utils.EmailService, logger *zap.Logger) *UserController {
	return &UserController{
		Users:        client.Database(utils.DatabaseName).Collection("users"),
		OtpService:   otpService,
		SellerSvc:    sellerSvc,
		EmailService: emailService,
		Logger:       logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register handles user registration and sends a verification code
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := uc.Users.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		uc.Logger.Error("failed to check existing user", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondError(w, http.StatusBadRequest, "User already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.Logger.Error("failed to hash password", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashedPassword),
		Role:      models.RoleBuyer,
		CreatedAt: time.Now(),
	}
	if _, err := uc.Users.InsertOne(ctx, user); err != nil {
		uc.Logger.Error("failed to insert user", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	code, err := uc.OtpService.Issue(ctx, req.Email)
	if err != nil {
		uc.Logger.Error("failed to issue otp", zap.String("email", req.Email), zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error sending verification code")
		return
	}

	go func(email, code string) {
		if err := uc.EmailService.SendOtpEmail(email, code); err != nil {
			uc.Logger.Error("failed to send otp email", zap.String("email", email), zap.Error(err))
		}
	}(req.Email, code)

	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully. Please check your email for the verification code.",
	})
}

type verifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required"`
}

// VerifyOtp consumes a one-time code and marks the account verified
func (uc *UserController) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Email and otp are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.OtpService.Verify(ctx, req.Email, req.Otp); err != nil {
		if err == services.ErrInvalidOtp {
			utils.RespondError(w, http.StatusUnauthorized, "Invalid or expired OTP")
			return
		}
		uc.Logger.Error("otp verification failed", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully. You can now log in."})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := uc.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsVerified {
		utils.RespondError(w, http.StatusUnauthorized, "Email not verified")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Role)
	if err != nil {
		uc.Logger.Error("failed to generate token", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"userId": user.ID.Hex(),
		"token":  token,
		"email":  user.Email,
	})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
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

	var user models.User
	if err := uc.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, user)
}

type applySellerRequest struct {
	UserID         string `json:"userId" validate:"required"`
	ShopName       string `json:"shopName" validate:"required"`
	Description    string `json:"description"`
	BusinessType   string `json:"businessType"`
	ProductsToSell string `json:"productsToSell"`
}

// ApplySeller submits a full seller application for a user
func (uc *UserController) ApplySeller(w http.ResponseWriter, r *http.Request) {
	var req applySellerRequest
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

	user, err := uc.SellerSvc.Apply(ctx, userID, services.SellerApplication{
		ShopName:       req.ShopName,
		Description:    req.Description,
		BusinessType:   req.BusinessType,
		ProductsToSell: req.ProductsToSell,
	})
	if err != nil {
		switch err {
		case services.ErrNotFound:
			utils.RespondError(w, http.StatusNotFound, "User not found")
		case services.ErrAlreadyApplied:
			utils.RespondError(w, http.StatusBadRequest, "Seller application already exists")
		default:
			uc.Logger.Error("seller application failed", zap.Error(err))
			utils.RespondError(w, http.StatusInternalServerError, "Error applying as seller")
		}
		return
	}

	user.Password = ""
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}
