package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BalanceSnapshot records the balance of an account on a specific day.
type BalanceSnapshot struct {
	DefaultModel
	Account      Account         `json:"-"`
	AccountID    uuid.UUID       `json:"account_id" gorm:"index"`
	SnapshotDate time.Time       `json:"snapshot_date" gorm:"index"`
	Balance      decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave sets the timezone for the snapshot date to UTC.
func (s *BalanceSnapshot) BeforeSave(_ *gorm.DB) error {
	s.SnapshotDate = s.SnapshotDate.In(time.UTC)
	return nil
}
