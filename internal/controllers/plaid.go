package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/account-manager/backend/internal/httputil"
	"github.com/account-manager/backend/internal/models"
	"github.com/account-manager/backend/internal/plaid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	plaidProvider plaid.Provider
	plaidCipher   *plaid.TokenCipher
	plaidEnabled  bool
)

// ConfigurePlaid sets the Plaid client used by the Plaid endpoints. With
// enabled set to false, all endpoints except the status respond with 503.
func ConfigurePlaid(provider plaid.Provider, cipher *plaid.TokenCipher, enabled bool) {
	plaidProvider = provider
	plaidCipher = cipher
	plaidEnabled = enabled
}

// RegisterPlaidRoutes registers the routes for Plaid bank linking with
// the RouterGroup that is passed.
func RegisterPlaidRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/status", httputil.OptionsGet)
	r.GET("/status", GetPlaidStatus)

	r.OPTIONS("/link-token", httputil.OptionsGet)
	r.GET("/link-token", GetLinkToken)

	r.OPTIONS("/exchange-token", httputil.OptionsPost)
	r.POST("/exchange-token", ExchangePublicToken)

	r.OPTIONS("/sync", httputil.OptionsPost)
	r.POST("/sync", SyncPlaidAccounts)
}

// @Summary		Plaid status
// @Description	Returns whether Plaid bank linking is configured
// @Tags			Plaid
// @Produce		json
// @Success		200	{object}	map[string]bool
// @Router			/plaid/status [get]
func GetPlaidStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"enabled": plaidEnabled,
	})
}

// @Summary		Get link token
// @Description	Creates a short-lived token that authorizes one Plaid Link session
// @Tags			Plaid
// @Produce		json
// @Success		200	{object}	map[string]string
// @Failure		500	{object}	httputil.HTTPError
// @Failure		503	{object}	httputil.HTTPError
// @Router			/plaid/link-token [get]
func GetLinkToken(c *gin.Context) {
	if !plaidEnabled {
		httputil.NewError(c, http.StatusServiceUnavailable, errPlaidNotConfigured)
		return
	}

	token, err := plaidProvider.CreateLinkToken(c.Request.Context())
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link_token": token,
	})
}

type exchangeRequest struct {
	PublicToken string `json:"public_token" binding:"required"`
}

// linkedAccount is one account created from a completed Link session.
type linkedAccount struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// @Summary		Exchange public token
// @Description	Exchanges a public token from a completed Link session and imports the linked accounts
// @Tags			Plaid
// @Accept			json
// @Produce		json
// @Success		200		{object}	map[string]any
// @Failure		400		{object}	httputil.HTTPError
// @Failure		503		{object}	httputil.HTTPError
// @Param			token	body		exchangeRequest	true	"Public token"
// @Router			/plaid/exchange-token [post]
func ExchangePublicToken(c *gin.Context) {
	if !plaidEnabled {
		httputil.NewError(c, http.StatusServiceUnavailable, errPlaidNotConfigured)
		return
	}

	var request exchangeRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		return
	}

	exchange, err := plaidProvider.ExchangePublicToken(c.Request.Context(), request.PublicToken)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	remote, err := plaidProvider.GetAccounts(c.Request.Context(), exchange.AccessToken)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	encrypted, err := plaidCipher.Encrypt(exchange.AccessToken)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	created := make([]linkedAccount, 0, len(remote.Accounts))
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		institution := models.Institution{Name: remote.InstitutionName, InstitutionType: "bank"}
		err := tx.Where(&models.Institution{Name: remote.InstitutionName}).FirstOrCreate(&institution).Error
		if err != nil {
			return err
		}

		item := models.PlaidItem{
			ItemID:               exchange.ItemID,
			InstitutionID:        &institution.ID,
			InstitutionName:      remote.InstitutionName,
			AccessTokenEncrypted: encrypted,
			IsActive:             true,
		}
		err = tx.Create(&item).Error
		if err != nil {
			return err
		}

		for _, remoteAccount := range remote.Accounts {
			name := remoteAccount.Name
			if name == "" {
				name = fmt.Sprintf("%s Account", remote.InstitutionName)
			}

			account := models.Account{
				InstitutionID:  &institution.ID,
				Name:           name,
				AccountType:    mapAccountType(remoteAccount.Type),
				Currency:       remoteAccount.Currency,
				CurrentBalance: signedBalance(mapAccountType(remoteAccount.Type), remoteAccount.Balance),
				IsActive:       true,
			}
			err = tx.Create(&account).Error
			if err != nil {
				return err
			}

			created = append(created, linkedAccount{
				ID:      account.ID.String(),
				Name:    account.Name,
				Type:    string(account.AccountType),
				Balance: account.CurrentBalance,
			})
		}

		return nil
	})
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_id":     exchange.ItemID,
		"institution": remote.InstitutionName,
		"accounts":    created,
	})
}

// syncError reports a failed sync for a single bank connection.
type syncError struct {
	ItemID string `json:"item_id"`
	Error  string `json:"error"`
}

// @Summary		Sync linked accounts
// @Description	Refreshes the balances of all accounts linked through Plaid. Failures of single connections are reported, not fatal
// @Tags			Plaid
// @Produce		json
// @Success		200	{object}	map[string]any
// @Failure		500	{object}	httputil.HTTPError
// @Failure		503	{object}	httputil.HTTPError
// @Router			/plaid/sync [post]
func SyncPlaidAccounts(c *gin.Context) {
	if !plaidEnabled {
		httputil.NewError(c, http.StatusServiceUnavailable, errPlaidNotConfigured)
		return
	}

	var items []models.PlaidItem
	err := models.DB.Where("is_active = ?", true).Find(&items).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	var updated int
	syncErrors := make([]syncError, 0)

	for _, item := range items {
		count, err := syncItem(c, item)
		if err != nil {
			syncErrors = append(syncErrors, syncError{ItemID: item.ItemID, Error: err.Error()})
			continue
		}
		updated += count
	}

	c.JSON(http.StatusOK, gin.H{
		"accounts_updated": updated,
		"errors":           syncErrors,
	})
}

// syncItem refreshes the balances of all accounts of one bank connection.
func syncItem(c *gin.Context, item models.PlaidItem) (int, error) {
	token, err := plaidCipher.Decrypt(item.AccessTokenEncrypted)
	if err != nil {
		return 0, err
	}

	remote, err := plaidProvider.GetAccounts(c.Request.Context(), token)
	if err != nil {
		return 0, err
	}

	var updated int
	for _, remoteAccount := range remote.Accounts {
		var account models.Account
		err := models.DB.
			Where("institution_id = ? AND name = ?", item.InstitutionID, remoteAccount.Name).
			First(&account).Error
		if err != nil {
			if errors.Is(err, models.ErrResourceNotFound) {
				continue
			}
			return updated, err
		}

		balance := signedBalance(account.AccountType, remoteAccount.Balance)
		err = models.DB.Model(&account).Update("current_balance", balance).Error
		if err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// mapAccountType translates a Plaid account type to ours.
func mapAccountType(plaidType string) models.AccountType {
	switch plaidType {
	case "depository":
		return models.AccountTypeChecking
	case "credit":
		return models.AccountTypeCreditCard
	case "loan":
		return models.AccountTypeLoan
	case "investment":
		return models.AccountTypeInvestment
	default:
		return models.AccountTypeChecking
	}
}

// signedBalance applies the sign convention for card debt. Plaid reports
// credit balances as the positive amount owed.
func signedBalance(accountType models.AccountType, balance decimal.Decimal) decimal.Decimal {
	if accountType == models.AccountTypeCreditCard && balance.IsPositive() {
		return balance.Neg()
	}
	return balance
}
