package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RewardRule maps a spending category to a reward multiplier for one card
// account. The category may be a glob pattern, e.g. "grocer*".
type RewardRule struct {
	DefaultModel
	Account        Account         `json:"-"`
	AccountID      uuid.UUID       `json:"account_id" gorm:"index"`
	Category       string          `json:"category" gorm:"index"`
	Multiplier     decimal.Decimal `json:"multiplier" gorm:"type:DECIMAL(20,8)"`
	PointCurrency  string          `json:"point_currency"`
	CapDescription string          `json:"cap_description,omitempty"`
	Exclusions     string          `json:"exclusions,omitempty"`
}

// BeforeSave normalizes the category to lower case.
func (r *RewardRule) BeforeSave(_ *gorm.DB) error {
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	if r.Category == "" {
		return ErrRewardCategoryEmpty
	}

	if r.PointCurrency == "" {
		r.PointCurrency = "points"
	}

	return nil
}

// BeforeCreate verifies that the referenced account exists.
func (r *RewardRule) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	return tx.First(&Account{}, "id = ?", r.AccountID).Error
}

// Offer is a time-limited bonus on top of a card's reward rules. An empty
// category applies the offer to all categories.
type Offer struct {
	DefaultModel
	Account         Account         `json:"-"`
	AccountID       uuid.UUID       `json:"account_id" gorm:"index"`
	Title           string          `json:"title"`
	Merchant        string          `json:"merchant,omitempty" gorm:"index"`
	Category        string          `json:"category,omitempty" gorm:"index"`
	BonusMultiplier decimal.Decimal `json:"bonus_multiplier" gorm:"type:DECIMAL(20,8)"`
	ValidUntil      *time.Time      `json:"valid_until"`
	Details         string          `json:"details,omitempty"`
}

// BeforeSave normalizes the category to lower case.
func (o *Offer) BeforeSave(_ *gorm.DB) error {
	o.Title = strings.TrimSpace(o.Title)
	o.Category = strings.ToLower(strings.TrimSpace(o.Category))
	return nil
}
