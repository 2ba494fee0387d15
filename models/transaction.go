package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionType distinguishes income from expense records
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// IsValid returns true if the type is INCOME or EXPENSE
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a finance record used for expense and income reporting
type Transaction struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    string          `gorm:"not null" json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	CreatedBy   *string         `json:"createdBy,omitempty"` // user id of the recording actor
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate assigns a UUID and defaults the date when missing
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	return nil
}
