package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/middleware"
	"github.com/sultan-bakery/sultan-orders-api/models"
	"github.com/sultan-bakery/sultan-orders-api/services"
)

// ListMyNotifications handles GET /api/v1/notifications - returns the
// notifications addressed to the current user or their role, newest first
func ListMyNotifications(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	store := services.GetNotificationStore()
	if store == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.AppNotification{}})
		return
	}

	notifications := store.ListFor(user)
	if notifications == nil {
		notifications = []models.AppNotification{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
	})
}

// MarkNotificationRead handles PUT /api/v1/notifications/:id/read.
// Marking is idempotent; unknown ids succeed silently.
func MarkNotificationRead(c *gin.Context) {
	store := services.GetNotificationStore()
	if store != nil {
		store.MarkRead(c.Param("id"))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}
