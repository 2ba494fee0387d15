package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusChange is one entry in an order's append-only history log
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// Order represents a customer order moving through the fulfillment pipeline
type Order struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	CustomerName    string         `gorm:"not null" json:"customerName"`
	CustomerPhone   string         `gorm:"not null" json:"customerPhone"`
	Description     string         `gorm:"not null" json:"description"`
	ImageKey        *string        `json:"imageKey,omitempty"`          // S3 key for the uploaded design photo
	ImageURL        *string        `gorm:"-" json:"imageUrl,omitempty"` // computed field, presigned URL for the image
	DueDate         time.Time      `gorm:"not null;index" json:"dueDate"`
	Status          OrderStatus    `gorm:"not null;default:'DRAFT'" json:"status"`
	TotalAmount     float64        `gorm:"not null" json:"totalAmount"`
	PaidAmount      float64        `gorm:"not null" json:"paidAmount"`
	RemainingAmount float64        `gorm:"not null" json:"remainingAmount"` // always totalAmount - paidAmount
	FactoryID       *string        `gorm:"index" json:"factoryId,omitempty"` // facility that produces the order
	ShopID          *string        `gorm:"index" json:"shopId,omitempty"`    // facility that received the order
	History         []StatusChange `gorm:"serializer:json" json:"history"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID when no id was provided
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Recalculate enforces the payment invariant remainingAmount == totalAmount - paidAmount
func (o *Order) Recalculate() {
	o.RemainingAmount = o.TotalAmount - o.PaidAmount
}

// AppendHistory records a status change in the append-only log
func (o *Order) AppendHistory(status OrderStatus, at time.Time, note string) {
	o.History = append(o.History, StatusChange{
		Status:    status,
		Timestamp: at,
		Note:      note,
	})
}
