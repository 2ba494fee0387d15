package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TriggerType selects which condition an alert rule evaluates
type TriggerType string

const (
	TriggerTimeBeforeDue TriggerType = "TIME_BEFORE_DUE"
	TriggerStatusChange  TriggerType = "STATUS_CHANGE"
)

// IsValid returns true for a known trigger type
func (t TriggerType) IsValid() bool {
	return t == TriggerTimeBeforeDue || t == TriggerStatusChange
}

// AlertRule is a user-configured trigger evaluated against the live order set.
// MinutesBefore is only meaningful for TIME_BEFORE_DUE rules, TargetStatus only
// for STATUS_CHANGE rules; a rule missing its required field is inert.
type AlertRule struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	IsActive        bool           `gorm:"not null;default:true" json:"isActive"`
	TriggerType     TriggerType    `gorm:"not null" json:"triggerType"`
	MinutesBefore   *int           `json:"minutesBefore,omitempty"`
	TargetStatus    *OrderStatus   `json:"targetStatus,omitempty"`
	TargetRoles     []string       `gorm:"serializer:json" json:"targetRoles"`
	MessageTemplate string         `gorm:"not null" json:"messageTemplate"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the AlertRule model
func (AlertRule) TableName() string {
	return "alert_rules"
}

// BeforeCreate assigns a UUID when no id was provided
func (r *AlertRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
