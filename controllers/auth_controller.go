package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/middleware"
	"github.com/sultan-bakery/sultan-orders-api/services"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login - authenticates a user and issues a session token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username and password are required",
				"details": err.Error(),
			},
		})
		return
	}

	auth := services.NewAuthService(config.GetDB())
	user, err := auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": "Username or password is incorrect",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to authenticate user",
			},
		})
		return
	}

	token := middleware.CreateSession(user)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// Logout handles POST /api/v1/auth/logout - invalidates the current session
func Logout(c *gin.Context) {
	token, err := middleware.SessionToken(c)
	if err == nil {
		middleware.DestroySession(token)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}
