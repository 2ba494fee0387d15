package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sultan-bakery/sultan-orders-api/config"
	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Order{},
		&models.User{},
		&models.Facility{},
		&models.Role{},
		&models.Transaction{},
		&models.AlertRule{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware injects an already-authenticated user into the Gin
// context, bypassing the session lookup the real middleware does
func mockAuthMiddleware(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("current_user", user)
		c.Set("session_token", "mock-token")
		c.Next()
	}
}

// seedTestRole inserts a role with a fixed id and the given permissions
func seedTestRole(t *testing.T, db *gorm.DB, id string, perms ...models.Permission) models.Role {
	t.Helper()

	role := models.Role{ID: id, Name: id, Permissions: perms}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("Failed to seed role %s: %v", id, err)
	}
	return role
}

// adminUser returns a user bound to a freshly seeded all-permissions role
func adminUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	seedTestRole(t, db, models.RoleAdmin, models.AllPermissions...)
	user := models.User{
		Username:    "admin_test",
		Password:    "secret",
		DisplayName: "Admin Test",
		RoleID:      models.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed admin user: %v", err)
	}
	return &user
}
