package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sultan-bakery/sultan-orders-api/models"
)

func TestCreateUser(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := adminUser(t, db)
	seedTestRole(t, db, models.RoleReception, models.PermCreateOrder)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create user",
			requestBody: map[string]interface{}{
				"username":    "fatima",
				"password":    "secret",
				"displayName": "Fatima",
				"roleId":      models.RoleReception,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "fatima", data["username"])
				assert.NotEmpty(t, data["id"])
				_, hasPassword := data["password"]
				assert.False(t, hasPassword, "password must never appear in responses")
			},
		},
		{
			name: "Duplicate username is rejected",
			requestBody: map[string]interface{}{
				"username":    "fatima",
				"password":    "other",
				"displayName": "Second Fatima",
				"roleId":      models.RoleReception,
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "USER_EXISTS",
		},
		{
			name: "Unknown role is rejected",
			requestBody: map[string]interface{}{
				"username":    "imad",
				"password":    "secret",
				"displayName": "Imad",
				"roleId":      "missing_role",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "ROLE_NOT_FOUND",
		},
		{
			name: "Missing required fields",
			requestBody: map[string]interface{}{
				"username": "imad",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/users", mockAuthMiddleware(admin), CreateUser)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(body))
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

func TestUpdateUser(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := adminUser(t, db)
	seedTestRole(t, db, models.RoleReception, models.PermCreateOrder)
	seedTestRole(t, db, models.RoleFactory, models.PermMoveToInCreation)

	user := models.User{
		Username:    "fatima",
		Password:    "secret",
		DisplayName: "Fatima",
		RoleID:      models.RoleReception,
	}
	require.NoError(t, db.Create(&user).Error)

	router := setupTestRouter()
	router.PUT("/users/:id", mockAuthMiddleware(admin), UpdateUser)

	t.Run("Reassign role and display name", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"displayName": "Fatima K",
			"roleId":      models.RoleFactory,
		})
		req, _ := http.NewRequest(http.MethodPut, "/users/"+user.ID, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var stored models.User
		require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
		assert.Equal(t, "Fatima K", stored.DisplayName)
		assert.Equal(t, models.RoleFactory, stored.RoleID)
		assert.Equal(t, "secret", stored.Password, "untouched password survives")
	})

	t.Run("Unknown role on update is rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"roleId": "missing_role"})
		req, _ := http.NewRequest(http.MethodPut, "/users/"+user.ID, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown user", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"displayName": "X"})
		req, _ := http.NewRequest(http.MethodPut, "/users/missing", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteUser(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := adminUser(t, db)
	seedTestRole(t, db, models.RoleReception, models.PermCreateOrder)

	user := models.User{
		Username:    "fatima",
		Password:    "secret",
		DisplayName: "Fatima",
		RoleID:      models.RoleReception,
	}
	require.NoError(t, db.Create(&user).Error)

	router := setupTestRouter()
	router.DELETE("/users/:id", mockAuthMiddleware(admin), DeleteUser)

	req, _ := http.NewRequest(http.MethodDelete, "/users/"+user.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestListUsers(t *testing.T) {
	db := setupControllerTestDB(t)
	admin := adminUser(t, db)

	router := setupTestRouter()
	router.GET("/users", mockAuthMiddleware(admin), ListUsers)

	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1, "only stored users appear; the master admin does not")
}
