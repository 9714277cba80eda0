package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrAccountTypeInvalid        = errors.New("the account type must be one of checking, savings, investment, retirement, credit_card, loan")
	ErrInstitutionNameNotUnique  = errors.New("the institution name must be unique")
	ErrCardExists                = errors.New("this account already has card details")
	ErrCardAccountNotCreditCard  = errors.New("card details can only be added to credit_card accounts")
	ErrRewardCategoryEmpty       = errors.New("the reward rule category must not be empty")
	ErrImportTypeInvalid         = errors.New("import_type must be balances or transactions")
	ErrPlaidItemIDNotUnique      = errors.New("this bank connection is already linked")
	ErrDueDayOutOfRange          = errors.New("the due day must be between 1 and 31")
	ErrStatementDayOutOfRange    = errors.New("the statement day must be between 1 and 31")
	ErrMinPaymentNegative        = errors.New("the minimum payment due cannot be negative")
	ErrTransactionDescriptionSet = errors.New("the transaction description must be set")
)
