package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/models"
)

// SaveRoleRequest represents the request body for creating or updating a role
type SaveRoleRequest struct {
	Name        string              `json:"name" binding:"required"`
	Permissions []models.Permission `json:"permissions"`
}

// ListRoles handles GET /api/v1/roles - lists all roles
func ListRoles(c *gin.Context) {
	db := config.GetDB()

	var roles []models.Role
	if err := db.Order("created_at ASC").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch roles",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    roles,
	})
}

// CreateRole handles POST /api/v1/roles - creates a permission bundle
func CreateRole(c *gin.Context) {
	var req SaveRoleRequest
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

	for _, perm := range req.Permissions {
		if !perm.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown permission token: " + string(perm),
				},
			})
			return
		}
	}

	role := models.Role{
		Name:        req.Name,
		Permissions: req.Permissions,
	}

	db := config.GetDB()
	if err := db.Create(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create role",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    role,
	})
}

// UpdateRole handles PUT /api/v1/roles/:id - replaces a role's name and permissions
func UpdateRole(c *gin.Context) {
	var req SaveRoleRequest
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

	for _, perm := range req.Permissions {
		if !perm.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown permission token: " + string(perm),
				},
			})
			return
		}
	}

	db := config.GetDB()

	var role models.Role
	if err := db.First(&role, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ROLE_NOT_FOUND",
				"message": "Role not found",
			},
		})
		return
	}

	role.Name = req.Name
	role.Permissions = req.Permissions

	if err := db.Save(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update role",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    role,
	})
}

// DeleteRole handles DELETE /api/v1/roles/:id - removes a role.
// Deleting a role still referenced by a user is rejected.
func DeleteRole(c *gin.Context) {
	db := config.GetDB()

	var role models.Role
	if err := db.First(&role, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ROLE_NOT_FOUND",
				"message": "Role not found",
			},
		})
		return
	}

	var userCount int64
	if err := db.Model(&models.User{}).Where("role_id = ?", role.ID).Count(&userCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to check role usage",
			},
		})
		return
	}
	if userCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ROLE_IN_USE",
				"message": "Role is assigned to existing users and cannot be deleted",
			},
		})
		return
	}

	if err := db.Delete(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete role",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}
