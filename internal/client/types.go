package client

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is an account as returned by the backend.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	AccountType    string          `json:"account_type"`
	Currency       string          `json:"currency"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	InstitutionID  *uuid.UUID      `json:"institution_id"`
	IsActive       bool            `json:"is_active"`
}

// AccountCreate is the payload for creating an account.
type AccountCreate struct {
	Name           string          `json:"name"`
	AccountType    string          `json:"account_type"`
	Currency       string          `json:"currency"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// Card is a credit card detail record as returned by the backend.
type Card struct {
	ID            uuid.UUID        `json:"id"`
	AccountID     uuid.UUID        `json:"account_id"`
	IssuerName    string           `json:"issuer_name"`
	APR           *decimal.Decimal `json:"apr"`
	StatementDay  int              `json:"statement_day"`
	DueDay        int              `json:"due_day"`
	MinPaymentDue decimal.Decimal  `json:"min_payment_due"`
}

// CardCreate is the payload for creating a card.
type CardCreate struct {
	AccountID     uuid.UUID        `json:"account_id"`
	IssuerName    string           `json:"issuer_name"`
	APR           *decimal.Decimal `json:"apr,omitempty"`
	StatementDay  int              `json:"statement_day"`
	DueDay        int              `json:"due_day"`
	MinPaymentDue decimal.Decimal  `json:"min_payment_due"`
}

// Summary holds the aggregate totals shown at the top of the dashboard.
type Summary struct {
	TotalCash        decimal.Decimal `json:"total_cash"`
	TotalInvestments decimal.Decimal `json:"total_investments"`
	TotalCardDebt    decimal.Decimal `json:"total_card_debt"`
	UpcomingDueCount int64           `json:"upcoming_due_count"`
}

// DueDate is the upcoming payment due date of one card.
type DueDate struct {
	CardAccountID uuid.UUID       `json:"card_account_id"`
	CardName      string          `json:"card_name"`
	DueDate       string          `json:"due_date"`
	MinPaymentDue decimal.Decimal `json:"min_payment_due"`
	DaysRemaining int             `json:"days_remaining"`
}

// RewardRuleCreate is the payload for creating a reward rule.
type RewardRuleCreate struct {
	AccountID  uuid.UUID       `json:"account_id"`
	Category   string          `json:"category"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Recommendation is the best card for a spending category.
type Recommendation struct {
	Category       string          `json:"category"`
	AccountID      uuid.UUID       `json:"account_id"`
	CardName       string          `json:"card_name"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	Rationale      string          `json:"rationale"`
}

// PlaidStatus reports whether the backend has Plaid configured.
type PlaidStatus struct {
	Enabled bool `json:"enabled"`
}

// SyncResult is the outcome of a balance sync over all bank connections.
type SyncResult struct {
	AccountsUpdated int         `json:"accounts_updated"`
	Errors          []SyncError `json:"errors"`
}

// SyncError is the failure of a single bank connection during a sync.
type SyncError struct {
	ItemID string `json:"item_id"`
	Error  string `json:"error"`
}

// ExchangeResult is the outcome of exchanging a public token.
type ExchangeResult struct {
	ItemID      string          `json:"item_id"`
	Institution string          `json:"institution"`
	Accounts    []LinkedAccount `json:"accounts"`
}

// LinkedAccount is one account created from a completed Link session.
type LinkedAccount struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}
