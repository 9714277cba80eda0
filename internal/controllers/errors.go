package controllers

import (
	"errors"
	"net/http"

	"github.com/account-manager/backend/internal/models"
)

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Import errors
var (
	errNoFilePost = errors.New("you must send a file to this endpoint")
)

// Recommendation errors
var (
	errCategoryTooShort  = errors.New("the category query parameter must be at least 2 characters long")
	errAmountNotPositive = errors.New("the amount query parameter must be greater than 0")
)

// Plaid errors
var (
	errPlaidNotConfigured = errors.New("Plaid is not configured. Set PLAID_CLIENT_ID and PLAID_SECRET to enable bank linking")
)
