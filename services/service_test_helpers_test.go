package services

import (
	"testing"

	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupServiceTestDB creates an isolated in-memory database with all models migrated
func setupServiceTestDB(t *testing.T) *gorm.DB {
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
		&models.AlertRule{},
		&models.Transaction{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// seedRole inserts a role with the given permissions and returns it
func seedRole(t *testing.T, db *gorm.DB, id, name string, perms ...models.Permission) models.Role {
	t.Helper()

	role := models.Role{ID: id, Name: name, Permissions: perms}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("Failed to seed role %s: %v", id, err)
	}
	return role
}

// seedUser inserts a user holding the given role and returns it
func seedUser(t *testing.T, db *gorm.DB, username, roleID string) models.User {
	t.Helper()

	user := models.User{
		Username:    username,
		Password:    "secret",
		DisplayName: username,
		RoleID:      roleID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return user
}
