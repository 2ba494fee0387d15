package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/models"
)

// CreateFacilityRequest represents the request body for creating a facility
type CreateFacilityRequest struct {
	Name     string              `json:"name" binding:"required"`
	Type     models.FacilityType `json:"type" binding:"required"`
	Location *string             `json:"location"`
}

// ListFacilities handles GET /api/v1/facilities - lists facilities,
// optionally filtered by ?type=SHOP or ?type=FACTORY
func ListFacilities(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Facility{}).Order("name ASC")

	if facilityType := c.Query("type"); facilityType != "" {
		if !models.FacilityType(facilityType).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Facility type must be SHOP or FACTORY",
				},
			})
			return
		}
		query = query.Where("type = ?", facilityType)
	}

	var facilities []models.Facility
	if err := query.Find(&facilities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch facilities",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    facilities,
	})
}

// CreateFacility handles POST /api/v1/facilities - creates a shop or factory
func CreateFacility(c *gin.Context) {
	var req CreateFacilityRequest
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

	if !req.Type.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Facility type must be SHOP or FACTORY",
			},
		})
		return
	}

	facility := models.Facility{
		Name:     req.Name,
		Type:     req.Type,
		Location: req.Location,
	}

	db := config.GetDB()
	if err := db.Create(&facility).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create facility",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    facility,
	})
}

// DeleteFacility handles DELETE /api/v1/facilities/:id - removes a facility
func DeleteFacility(c *gin.Context) {
	db := config.GetDB()

	var facility models.Facility
	if err := db.First(&facility, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FACILITY_NOT_FOUND",
				"message": "Facility not found",
			},
		})
		return
	}

	if err := db.Delete(&facility).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete facility",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}
