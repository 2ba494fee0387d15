package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known role ids seeded on first boot
const (
	RoleAdmin     = "admin_role"
	RoleReception = "reception_role"
	RoleFactory   = "factory_role"
)

// Role is a named bundle of permissions referenced by users
type Role struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Permissions []Permission   `gorm:"serializer:json" json:"permissions"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// BeforeCreate assigns a UUID when no id was provided
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// HasPermission reports whether the role grants the given token
func (r *Role) HasPermission(perm Permission) bool {
	for _, p := range r.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// DefaultRoles returns the role set seeded when the roles table is empty
func DefaultRoles() []Role {
	return []Role{
		{
			ID:          RoleAdmin,
			Name:        "System administrator",
			Permissions: append([]Permission{}, AllPermissions...),
		},
		{
			ID:   RoleReception,
			Name: "Shop reception",
			Permissions: []Permission{
				PermCreateOrder, PermEditOrder, PermViewAllOrders,
				PermMoveToRegistered, PermMoveToDelivered,
			},
		},
		{
			ID:   RoleFactory,
			Name: "Factory staff",
			Permissions: []Permission{
				PermViewAllOrders,
				PermMoveToInCreation, PermMoveToPrepared, PermMoveToTransferred,
			},
		},
	}
}
