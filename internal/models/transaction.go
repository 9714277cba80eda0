package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single booking on an account.
type Transaction struct {
	DefaultModel
	Account         Account         `json:"-"`
	AccountID       uuid.UUID       `json:"account_id" gorm:"index"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Category        string          `json:"category,omitempty" gorm:"index"`
	Merchant        string          `json:"merchant,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// BeforeSave sets the timezone for the transaction date to UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return ErrTransactionDescriptionSet
	}

	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now().In(time.UTC)
	} else {
		t.TransactionDate = t.TransactionDate.In(time.UTC)
	}

	return nil
}

// BeforeCreate verifies that the referenced account exists.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return tx.First(&Account{}, "id = ?", t.AccountID).Error
}
