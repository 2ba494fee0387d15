package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/middleware"
	"github.com/sultan-bakery/sultan-orders-api/models"
	"github.com/sultan-bakery/sultan-orders-api/services"
)

// CreateTransactionRequest represents the request body for recording a transaction
type CreateTransactionRequest struct {
	Type        models.TransactionType `json:"type" binding:"required"`
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Category    string                 `json:"category" binding:"required"`
	Description string                 `json:"description"`
	Date        *time.Time             `json:"date"`
}

// ListTransactions handles GET /api/v1/finance/transactions - returns the 50
// most recent transactions, newest first by date
func ListTransactions(c *gin.Context) {
	db := config.GetDB()

	var transactions []models.Transaction
	if err := db.Order("date DESC").Limit(50).Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch transactions",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transactions,
	})
}

// CreateTransaction handles POST /api/v1/finance/transactions - records an
// income or expense, attributed to the current user
func CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
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
				"message": "Transaction type must be INCOME or EXPENSE",
			},
		})
		return
	}

	transaction := models.Transaction{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != nil {
		transaction.Date = *req.Date
	}
	if user, err := middleware.CurrentUser(c); err == nil {
		userID := user.ID
		transaction.CreatedBy = &userID
	}

	db := config.GetDB()
	if err := db.Create(&transaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create transaction",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    transaction,
	})
}

// GetFinanceStats handles GET /api/v1/finance/stats - aggregate revenue,
// expenses and net profit plus current-month subtotals
func GetFinanceStats(c *gin.Context) {
	finance := services.NewFinanceService(config.GetDB())

	stats, err := finance.Stats(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to calculate financial statistics",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
