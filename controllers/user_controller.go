package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/models"
)

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username    string  `json:"username" binding:"required"`
	Password    string  `json:"password" binding:"required"`
	DisplayName string  `json:"displayName" binding:"required"`
	RoleID      string  `json:"roleId" binding:"required"`
	FacilityID  *string `json:"facilityId"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Password    *string `json:"password"`
	DisplayName *string `json:"displayName"`
	RoleID      *string `json:"roleId"`
	FacilityID  *string `json:"facilityId"`
}

// ListUsers handles GET /api/v1/users - lists all stored users.
// The master administrator lives outside the users table and never appears here.
func ListUsers(c *gin.Context) {
	db := config.GetDB()

	var users []models.User
	if err := db.Order("created_at ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch users",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

// CreateUser handles POST /api/v1/users - creates a new user
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// The role must resolve before anyone can hold it
	var role models.Role
	if err := db.First(&role, "id = ?", req.RoleID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ROLE_NOT_FOUND",
				"message": "The given role does not exist",
			},
		})
		return
	}

	user := models.User{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		RoleID:      req.RoleID,
		FacilityID:  req.FacilityID,
	}

	if err := db.Create(&user).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_EXISTS",
					"message": "A user with this username already exists",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create user",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
	})
}

// UpdateUser handles PUT /api/v1/users/:id - updates a stored user
func UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var user models.User
	if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	if req.RoleID != nil {
		var role models.Role
		if err := db.First(&role, "id = ?", *req.RoleID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ROLE_NOT_FOUND",
					"message": "The given role does not exist",
				},
			})
			return
		}
		user.RoleID = *req.RoleID
	}
	if req.Password != nil && *req.Password != "" {
		user.Password = *req.Password
	}
	if req.DisplayName != nil && *req.DisplayName != "" {
		user.DisplayName = *req.DisplayName
	}
	if req.FacilityID != nil {
		user.FacilityID = req.FacilityID
	}

	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update user",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// DeleteUser handles DELETE /api/v1/users/:id - removes a stored user
func DeleteUser(c *gin.Context) {
	db := config.GetDB()

	var user models.User
	if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User not found",
			},
		})
		return
	}

	if err := db.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete user",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}
