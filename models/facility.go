package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FacilityType distinguishes customer-facing shops from producing factories
type FacilityType string

const (
	FacilityShop    FacilityType = "SHOP"
	FacilityFactory FacilityType = "FACTORY"
)

// IsValid returns true if the type is SHOP or FACTORY
func (t FacilityType) IsValid() bool {
	return t == FacilityShop || t == FacilityFactory
}

// Facility represents a physical site, either a shop or a factory
type Facility struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Type      FacilityType   `gorm:"not null" json:"type"`
	Location  *string        `json:"location,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Facility model
func (Facility) TableName() string {
	return "facilities"
}

// BeforeCreate assigns a UUID when no id was provided
func (f *Facility) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
