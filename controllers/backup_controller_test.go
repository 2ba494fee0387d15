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
	"github.com/sultan-bakery/sultan-orders-api/services"
)

func TestExportBackup(t *testing.T) {
	db := setupControllerTestDB(t)
	services.SetNotificationStore(services.NewNotificationStore())

	admin := adminUser(t, db)
	createTestOrder(t, db, "Abu Salem", models.StatusDraft, time.Now().Add(time.Hour))

	router := setupTestRouter()
	router.GET("/backup", mockAuthMiddleware(admin), ExportBackup)

	req, _ := http.NewRequest(http.MethodGet, "/backup", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment; filename=sultan-orders-backup-")
	assert.Contains(t, disposition, ".json")

	var backup services.Backup
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &backup))
	assert.Equal(t, services.BackupVersion, backup.Version)
	assert.Len(t, backup.Orders, 1)
	assert.Len(t, backup.Users, 1)
	assert.Len(t, backup.Roles, 1)
}

func TestImportBackup(t *testing.T) {
	db := setupControllerTestDB(t)
	store := services.NewNotificationStore()
	services.SetNotificationStore(store)

	admin := adminUser(t, db)
	store.Create(models.AppNotification{Title: "stale", UserID: admin.ID})

	router := setupTestRouter()
	router.POST("/backup", mockAuthMiddleware(admin), ImportBackup)

	t.Run("Valid document replaces roles and rules", func(t *testing.T) {
		doc := services.Backup{
			Version: services.BackupVersion,
			Date:    time.Now(),
			Roles:   models.DefaultRoles(),
		}
		body, _ := json.Marshal(doc)

		req, _ := http.NewRequest(http.MethodPost, "/backup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var roles []models.Role
		require.NoError(t, db.Find(&roles).Error)
		assert.Len(t, roles, 3)
		assert.Zero(t, store.Len())
	})

	t.Run("Unsupported version", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{"version": 42})

		req, _ := http.NewRequest(http.MethodPost, "/backup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorData := response["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_ERROR", errorData["code"])
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/backup", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
