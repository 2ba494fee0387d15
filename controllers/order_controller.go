package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/middleware"
	"github.com/sultan-bakery/sultan-orders-api/models"
	"github.com/sultan-bakery/sultan-orders-api/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerName  string    `json:"customerName" binding:"required"`
	CustomerPhone string    `json:"customerPhone" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	DueDate       time.Time `json:"dueDate" binding:"required"`
	TotalAmount   float64   `json:"totalAmount" binding:"min=0"`
	PaidAmount    float64   `json:"paidAmount" binding:"min=0"`
	ImageKey      *string   `json:"imageKey"`
	FactoryID     *string   `json:"factoryId"`
	ShopID        *string   `json:"shopId"`
}

// UpdateOrderRequest represents the request body for editing order details.
// Status is absent: status only moves through the advance endpoint.
type UpdateOrderRequest struct {
	CustomerName  *string    `json:"customerName"`
	CustomerPhone *string    `json:"customerPhone"`
	Description   *string    `json:"description"`
	DueDate       *time.Time `json:"dueDate"`
	TotalAmount   *float64   `json:"totalAmount"`
	PaidAmount    *float64   `json:"paidAmount"`
	ImageKey      *string    `json:"imageKey"`
	FactoryID     *string    `json:"factoryId"`
	ShopID        *string    `json:"shopId"`
}

// CreateOrder handles POST /api/v1/orders - creates a new order in DRAFT
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	if req.PaidAmount > req.TotalAmount {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Paid amount cannot exceed total amount",
			},
		})
		return
	}

	order := models.Order{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Description:   req.Description,
		DueDate:       req.DueDate,
		Status:        models.StatusDraft,
		TotalAmount:   req.TotalAmount,
		PaidAmount:    req.PaidAmount,
		ImageKey:      req.ImageKey,
		FactoryID:     req.FactoryID,
		ShopID:        req.ShopID,
		History:       []models.StatusChange{},
	}
	order.Recalculate()

	db := config.GetDB()
	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	resolveOrderImage(&order)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists orders, newest first.
// Supports ?q= (customer name/phone search), ?status=, ?upcoming=true (due
// within 24h) and ?overdue=true. Actors without VIEW_ALL_ORDERS only see
// orders tied to their home facility.
func ListOrders(c *gin.Context) {
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

	db := config.GetDB()
	query := db.Model(&models.Order{}).Order("created_at DESC")

	perms := services.NewPermissionService(db)
	if !perms.HasPermission(user, models.PermViewAllOrders) {
		if user.FacilityID == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": []models.Order{}})
			return
		}
		query = query.Where("shop_id = ? OR factory_id = ?", *user.FacilityID, *user.FacilityID)
	}

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR customer_phone LIKE ?", like, "%"+q+"%")
	}

	if status := c.Query("status"); status != "" {
		if !models.OrderStatus(status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Unknown order status filter",
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	now := time.Now()
	if c.Query("upcoming") == "true" {
		query = query.Where("due_date >= ? AND due_date <= ? AND status <> ?",
			now, now.Add(24*time.Hour), models.StatusDelivered)
	}
	if c.Query("overdue") == "true" {
		query = query.Where("due_date < ? AND status <> ?", now, models.StatusDelivered)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	for i := range orders {
		resolveOrderImage(&orders[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches one order
func GetOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	resolveOrderImage(&order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id - edits order details.
// Payment fields are recomputed so remainingAmount always equals
// totalAmount - paidAmount. Status never changes here.
func UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
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

	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = *req.CustomerPhone
	}
	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.DueDate != nil {
		order.DueDate = *req.DueDate
	}
	if req.TotalAmount != nil {
		order.TotalAmount = *req.TotalAmount
	}
	if req.PaidAmount != nil {
		order.PaidAmount = *req.PaidAmount
	}
	if req.ImageKey != nil {
		order.ImageKey = req.ImageKey
	}
	if req.FactoryID != nil {
		order.FactoryID = req.FactoryID
	}
	if req.ShopID != nil {
		order.ShopID = req.ShopID
	}

	if order.TotalAmount < 0 || order.PaidAmount < 0 || order.PaidAmount > order.TotalAmount {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Amounts must be non-negative and paid amount cannot exceed total",
			},
		})
		return
	}
	order.Recalculate()

	if err := db.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	resolveOrderImage(&order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - administrative removal
func DeleteOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if err := db.Delete(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - moves the order to
// the next pipeline stage. The required permission depends on the order's
// current status; the state machine enforces it.
func AdvanceOrder(c *gin.Context) {
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

	db := config.GetDB()
	statusService := services.NewOrderStatusService(db, services.NewPermissionService(db))

	order, err := statusService.AdvanceByID(c.Param("id"), user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ORDER_NOT_FOUND",
					"message": "Order not found",
				},
			})
		case errors.Is(err, services.ErrNoNextState):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NO_NEXT_STATE",
					"message": "Order is already delivered; no further transition exists",
				},
			})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "You lack the permission required for this transition",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to advance order",
				},
			})
		}
		return
	}

	resolveOrderImage(order)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// resolveOrderImage fills the computed ImageURL field from the image service.
// Resolution failures leave the URL empty; they never fail the request.
func resolveOrderImage(order *models.Order) {
	if order.ImageKey == nil || *order.ImageKey == "" {
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		return
	}

	url, err := imageService.GetImageURL(*order.ImageKey)
	if err != nil || url == "" {
		return
	}
	order.ImageURL = &url
}
