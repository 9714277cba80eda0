package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// AccountType is the kind of account, e.g. a checking account.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeRetirement AccountType = "retirement"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeLoan       AccountType = "loan"
)

// AccountTypes lists all valid account types.
var AccountTypes = []AccountType{
	AccountTypeChecking,
	AccountTypeSavings,
	AccountTypeInvestment,
	AccountTypeRetirement,
	AccountTypeCreditCard,
	AccountTypeLoan,
}

// Valid reports whether the account type is one of the known types.
func (t AccountType) Valid() bool {
	return slices.Contains(AccountTypes, t)
}

// Institution represents a bank or brokerage that accounts belong to.
type Institution struct {
	DefaultModel
	Name            string `json:"name" gorm:"uniqueIndex"`
	InstitutionType string `json:"institution_type"`
}

// BeforeSave trims whitespace from all strings.
func (i *Institution) BeforeSave(_ *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	i.InstitutionType = strings.TrimSpace(i.InstitutionType)
	return nil
}

// Account represents a bank, investment, retirement or credit card account.
//
// The balance sign convention is not enforced. By convention, credit card
// debt is stored as a negative balance.
type Account struct {
	DefaultModel
	Institution    Institution     `json:"-"`
	InstitutionID  *uuid.UUID      `json:"institution_id"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"account_type"`
	Currency       string          `json:"currency"`
	CurrentBalance decimal.Decimal `json:"current_balance" gorm:"type:DECIMAL(20,8)"`
	IsActive       bool            `json:"is_active"`
}

// BeforeSave ensures consistency for the account.
//
// It verifies the account type and trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Currency = strings.TrimSpace(a.Currency)

	if a.Currency == "" {
		a.Currency = "USD"
	}

	if !a.AccountType.Valid() {
		return ErrAccountTypeInvalid
	}

	return nil
}

// DashboardSummary is the aggregate over all accounts that the dashboard
// renders. It is recomputed from scratch on every request.
type DashboardSummary struct {
	TotalCash        decimal.Decimal `json:"total_cash"`
	TotalInvestments decimal.Decimal `json:"total_investments"`
	TotalCardDebt    decimal.Decimal `json:"total_card_debt"`
	UpcomingDueCount int64           `json:"upcoming_due_count"`
}

// Summary calculates the dashboard aggregate.
//
// Cash is the sum over checking and savings accounts, investments over
// investment and retirement accounts. Card debt is the sum of the absolute
// balances of credit card accounts.
func Summary(db *gorm.DB) (DashboardSummary, error) {
	var accounts []Account
	err := db.Find(&accounts).Error
	if err != nil {
		return DashboardSummary{}, err
	}

	var cash, investments, debt decimal.Decimal
	for _, account := range accounts {
		switch account.AccountType {
		case AccountTypeChecking, AccountTypeSavings:
			cash = cash.Add(account.CurrentBalance)
		case AccountTypeInvestment, AccountTypeRetirement:
			investments = investments.Add(account.CurrentBalance)
		case AccountTypeCreditCard:
			debt = debt.Add(account.CurrentBalance.Abs())
		}
	}

	var cards int64
	err = db.Model(&CreditCardDetail{}).Count(&cards).Error
	if err != nil {
		return DashboardSummary{}, err
	}

	return DashboardSummary{
		TotalCash:        cash.Round(2),
		TotalInvestments: investments.Round(2),
		TotalCardDebt:    debt.Round(2),
		UpcomingDueCount: cards,
	}, nil
}
