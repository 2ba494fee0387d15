package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MasterAdminID identifies the development bootstrap account. It is never
// stored in the users table and always holds every permission.
const MasterAdminID = "SU_MASTER_DEV"

// User represents an actor in the system (shop staff, factory staff or admin)
type User struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;not null" json:"username"`
	Password    string         `gorm:"not null" json:"-"` // plaintext compare, dev-grade auth only
	DisplayName string         `gorm:"not null" json:"displayName"`
	RoleID      string         `gorm:"not null;index" json:"roleId"`
	FacilityID  *string        `gorm:"index" json:"facilityId,omitempty"` // home shop or factory
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID when no id was provided
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsMaster returns true for the development bootstrap administrator
func (u *User) IsMaster() bool {
	return u.ID == MasterAdminID
}
