package services

import (
	"github.com/sultan-bakery/sultan-orders-api/models"
	"gorm.io/gorm"
)

// PermissionService resolves whether an actor holding a role may perform an
// action. The role set lives in the injected database; the master bootstrap
// administrator bypasses it entirely.
type PermissionService struct {
	db *gorm.DB
}

// NewPermissionService creates a permission service backed by the given database
func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// HasPermission returns true if the user may perform the action guarded by perm
func (s *PermissionService) HasPermission(user *models.User, perm models.Permission) bool {
	if user == nil {
		return false
	}

	// The master administrator always holds every permission
	if user.IsMaster() {
		return true
	}

	var role models.Role
	if err := s.db.First(&role, "id = ?", user.RoleID).Error; err != nil {
		return false
	}

	return role.HasPermission(perm)
}
