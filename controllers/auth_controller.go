package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/AIABHISHEK/task-management-api/models"
	"github.com/AIABHISHEK/task-management-api/storage"
	"github.com/AIABHISHEK/task-management-api/utils"
)

// UserStore is the credential persistence the auth controller needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthController handles registration and login. These are the only routes
// that touch credentials; everything downstream trusts the token.
type AuthController struct {
	users  UserStore
	tokens *utils.JWTManager
	logger *zap.SugaredLogger
}

func NewAuthController(users UserStore, tokens *utils.JWTManager, logger *zap.SugaredLogger) *AuthController {
	return &AuthController{users: users, tokens: tokens, logger: logger}
}

// Register hashes the password and stores the new user.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		ac.logger.Errorw("password hashing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	user := &models.User{Username: req.Username, Password: hash}
	if _, err := ac.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "Username already taken"})
			return
		}
		ac.logger.Errorw("user creation failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationFailed(c, err)
		return
	}

	user, err := ac.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		ac.logger.Errorw("user lookup failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	token, err := ac.tokens.Generate(user.ID.Hex())
	if err != nil {
		ac.logger.Errorw("token generation failed", "error", err, "userID", user.ID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
