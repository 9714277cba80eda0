package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreditCardDetail stores the payment details for a credit card account.
// There is at most one detail record per account.
type CreditCardDetail struct {
	DefaultModel
	Account         Account          `json:"-"`
	AccountID       uuid.UUID        `json:"account_id" gorm:"uniqueIndex"`
	IssuerName      string           `json:"issuer_name"`
	APR             *decimal.Decimal `json:"apr" gorm:"type:DECIMAL(20,8)"`
	StatementDay    int              `json:"statement_day"`
	DueDay          int              `json:"due_day"`
	DueDateOverride *time.Time       `json:"due_date_override"`
	MinPaymentDue   decimal.Decimal  `json:"min_payment_due" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave verifies the day-of-month fields and the minimum payment.
func (c *CreditCardDetail) BeforeSave(_ *gorm.DB) error {
	c.IssuerName = strings.TrimSpace(c.IssuerName)

	if c.StatementDay < 1 || c.StatementDay > 31 {
		return ErrStatementDayOutOfRange
	}

	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrDueDayOutOfRange
	}

	if c.MinPaymentDue.IsNegative() {
		return ErrMinPaymentNegative
	}

	return nil
}

// BeforeCreate verifies that the referenced account exists and is a
// credit card account.
func (c *CreditCardDetail) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	var account Account
	err := tx.First(&account, "id = ?", c.AccountID).Error
	if err != nil {
		return err
	}

	if account.AccountType != AccountTypeCreditCard {
		return ErrCardAccountNotCreditCard
	}

	return nil
}

// NextDueDate resolves the next payment due date relative to today.
//
// An override date always wins. Otherwise the due day is clamped to the
// range [1, 28] so that it exists in every month, and the due date is the
// occurrence of that day in the current month, or in the next month if it
// has already passed.
func (c CreditCardDetail) NextDueDate(today time.Time) time.Time {
	if c.DueDateOverride != nil {
		return *c.DueDateOverride
	}

	day := c.DueDay
	if day < 1 {
		day = 1
	}
	if day > 28 {
		day = 28
	}

	cycle := time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, time.UTC)
	if cycle.Before(today) {
		cycle = cycle.AddDate(0, 1, 0)
	}

	return cycle
}

// DueDateItem is the projection of one card for the due date list.
// It is a pure read model, keyed by the card's account ID.
type DueDateItem struct {
	CardAccountID uuid.UUID       `json:"card_account_id"`
	CardName      string          `json:"card_name"`
	DueDate       string          `json:"due_date" example:"2024-05-20"`
	MinPaymentDue decimal.Decimal `json:"min_payment_due"`
	DaysRemaining int             `json:"days_remaining"`
}

// UpcomingDueDates projects all cards onto their next due dates, sorted by
// the days remaining. Cards whose account no longer exists are skipped.
func UpcomingDueDates(db *gorm.DB, today time.Time) ([]DueDateItem, error) {
	var cards []CreditCardDetail
	err := db.Find(&cards).Error
	if err != nil {
		return nil, err
	}

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	items := make([]DueDateItem, 0)
	for _, card := range cards {
		var account Account
		err := db.First(&account, "id = ?", card.AccountID).Error
		if err != nil {
			continue
		}

		due := card.NextDueDate(today)
		items = append(items, DueDateItem{
			CardAccountID: card.AccountID,
			CardName:      account.Name,
			DueDate:       due.Format("2006-01-02"),
			MinPaymentDue: card.MinPaymentDue,
			DaysRemaining: int(due.Sub(today).Hours() / 24),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysRemaining < items[j].DaysRemaining
	})

	return items, nil
}
