package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/services"
)

// ExportBackup handles GET /api/v1/backup - downloads the full backup document
func ExportBackup(c *gin.Context) {
	backupService := services.NewBackupService(config.GetDB(), services.GetNotificationStore())

	backup, err := backupService.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to export backup",
			},
		})
		return
	}

	filename := fmt.Sprintf("sultan-orders-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, backup)
}

// ImportBackup handles POST /api/v1/backup - destructively restores roles and
// alert rules from a backup document and clears stored notifications.
// Orders, users and facilities in the document are ignored on import.
func ImportBackup(c *gin.Context) {
	var backup services.Backup
	if err := c.ShouldBindJSON(&backup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid backup document",
				"details": err.Error(),
			},
		})
		return
	}

	backupService := services.NewBackupService(config.GetDB(), services.GetNotificationStore())
	if err := backupService.Restore(&backup); err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": validationErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to restore backup",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Backup restored",
	})
}
