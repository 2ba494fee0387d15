package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sultan-bakery/sultan-orders-api/models"
)

func TestCreateTransaction(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := adminUser(t, db)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Record expense",
			requestBody: map[string]interface{}{
				"type":        "EXPENSE",
				"amount":      120.5,
				"category":    "ingredients",
				"description": "Flour and sugar restock",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "EXPENSE", data["type"])
				assert.Equal(t, 120.5, data["amount"])
				assert.Equal(t, admin.ID, data["createdBy"], "transactions are attributed to the actor")
				assert.NotEmpty(t, data["date"], "date defaults to now when omitted")
			},
		},
		{
			name: "Record income with explicit date",
			requestBody: map[string]interface{}{
				"type":     "INCOME",
				"amount":   300,
				"category": "catering",
				"date":     time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Unknown type",
			requestBody: map[string]interface{}{
				"type":     "REFUND",
				"amount":   10,
				"category": "misc",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Zero amount",
			requestBody: map[string]interface{}{
				"type":     "EXPENSE",
				"amount":   0,
				"category": "misc",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name: "Missing category",
			requestBody: map[string]interface{}{
				"type":   "EXPENSE",
				"amount": 10,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/finance/transactions", mockAuthMiddleware(admin), CreateTransaction)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/finance/transactions", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			if tt.expectedError != "" {
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestListTransactions(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := adminUser(t, db)
	now := time.Now()

	// 55 transactions so the 50-row cap is observable
	for i := 0; i < 55; i++ {
		tx := models.Transaction{
			Type:     models.TransactionExpense,
			Amount:   float64(i + 1),
			Category: "misc",
			Date:     now.Add(-time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&tx).Error)
	}

	router := setupTestRouter()
	router.GET("/finance/transactions", mockAuthMiddleware(admin), ListTransactions)

	req, _ := http.NewRequest(http.MethodGet, "/finance/transactions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	require.Len(t, data, 50)

	// Newest date first
	first := data[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["amount"])
}

func TestGetFinanceStats(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := adminUser(t, db)
	now := time.Now()

	order := models.Order{
		CustomerName:  "Abu Salem",
		CustomerPhone: "0551234567",
		Description:   "Wedding cake",
		DueDate:       now.Add(48 * time.Hour),
		Status:        models.StatusDraft,
		TotalAmount:   500,
		PaidAmount:    200,
		History:       []models.StatusChange{},
	}
	order.Recalculate()
	require.NoError(t, db.Create(&order).Error)

	tx := models.Transaction{Type: models.TransactionExpense, Amount: 50, Category: "ingredients", Date: now}
	require.NoError(t, db.Create(&tx).Error)

	router := setupTestRouter()
	router.GET("/finance/stats", mockAuthMiddleware(admin), GetFinanceStats)

	req, _ := http.NewRequest(http.MethodGet, "/finance/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(200), data["totalRevenue"])
	assert.Equal(t, float64(300), data["pendingRevenue"])
	assert.Equal(t, float64(50), data["totalExpenses"])
	assert.Equal(t, float64(150), data["netProfit"])

	currentMonth := data["currentMonth"].(map[string]interface{})
	assert.Equal(t, float64(200), currentMonth["revenue"])
	assert.Equal(t, float64(50), currentMonth["expenses"])
}
