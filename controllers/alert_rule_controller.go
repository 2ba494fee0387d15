package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/models"
)

// SaveAlertRuleRequest represents the request body for creating or updating an
// alert rule. MinutesBefore/TargetStatus are optional at the transport level;
// a rule missing the field its trigger type needs is stored but never fires.
type SaveAlertRuleRequest struct {
	Name            string              `json:"name" binding:"required"`
	IsActive        *bool               `json:"isActive"`
	TriggerType     models.TriggerType  `json:"triggerType" binding:"required"`
	MinutesBefore   *int                `json:"minutesBefore"`
	TargetStatus    *models.OrderStatus `json:"targetStatus"`
	TargetRoles     []string            `json:"targetRoles"`
	MessageTemplate string              `json:"messageTemplate" binding:"required"`
}

func (r *SaveAlertRuleRequest) validate(c *gin.Context) bool {
	if !r.TriggerType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Trigger type must be TIME_BEFORE_DUE or STATUS_CHANGE",
			},
		})
		return false
	}
	if r.TargetStatus != nil && !r.TargetStatus.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown target status",
			},
		})
		return false
	}
	return true
}

// ListAlertRules handles GET /api/v1/alert-rules - lists all alert rules
func ListAlertRules(c *gin.Context) {
	db := config.GetDB()

	var rules []models.AlertRule
	if err := db.Order("created_at ASC").Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch alert rules",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rules,
	})
}

// CreateAlertRule handles POST /api/v1/alert-rules - creates an alert rule
func CreateAlertRule(c *gin.Context) {
	var req SaveAlertRuleRequest
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
	if !req.validate(c) {
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rule := models.AlertRule{
		Name:            req.Name,
		IsActive:        isActive,
		TriggerType:     req.TriggerType,
		MinutesBefore:   req.MinutesBefore,
		TargetStatus:    req.TargetStatus,
		TargetRoles:     req.TargetRoles,
		MessageTemplate: req.MessageTemplate,
	}

	db := config.GetDB()
	if err := db.Create(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create alert rule",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    rule,
	})
}

// UpdateAlertRule handles PUT /api/v1/alert-rules/:id - replaces an alert rule
func UpdateAlertRule(c *gin.Context) {
	var req SaveAlertRuleRequest
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
	if !req.validate(c) {
		return
	}

	db := config.GetDB()

	var rule models.AlertRule
	if err := db.First(&rule, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RULE_NOT_FOUND",
				"message": "Alert rule not found",
			},
		})
		return
	}

	rule.Name = req.Name
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	rule.TriggerType = req.TriggerType
	rule.MinutesBefore = req.MinutesBefore
	rule.TargetStatus = req.TargetStatus
	rule.TargetRoles = req.TargetRoles
	rule.MessageTemplate = req.MessageTemplate

	if err := db.Save(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update alert rule",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rule,
	})
}

// DeleteAlertRule handles DELETE /api/v1/alert-rules/:id - removes an alert rule
func DeleteAlertRule(c *gin.Context) {
	db := config.GetDB()

	var rule models.AlertRule
	if err := db.First(&rule, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RULE_NOT_FOUND",
				"message": "Alert rule not found",
			},
		})
		return
	}

	if err := db.Delete(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete alert rule",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}
