package controllers

import (
	"net/http"

	"github.com/account-manager/backend/internal/httputil"
	"github.com/account-manager/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAccounts)
	r.GET("", GetAccounts)
	r.POST("", CreateAccount)
}

type AccountEditable struct {
	Name           string             `json:"name" binding:"required" example:"Everyday Checking"`                        // Display name of the account
	AccountType    models.AccountType `json:"account_type" binding:"required" example:"checking"`                        // One of checking, savings, investment, retirement, credit_card, loan
	Currency       string             `json:"currency" example:"USD" default:"USD"`                                      // ISO currency code
	CurrentBalance decimal.Decimal    `json:"current_balance" example:"1500.00"`                                         // Current balance. Sign convention is not enforced
	InstitutionID  *uuid.UUID         `json:"institution_id" example:"95018fd6-9bc9-4f05-bb25-0e37a9e00c83" default:"null"` // Optional institution the account belongs to
}

// model returns the database resource for the API representation of the editable fields
func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:           editable.Name,
		AccountType:    editable.AccountType,
		Currency:       editable.Currency,
		CurrentBalance: editable.CurrentBalance,
		InstitutionID:  editable.InstitutionID,
		IsActive:       true,
	}
}

// Account is the API representation of an account.
type Account struct {
	models.DefaultModel
	AccountEditable
	IsActive bool `json:"is_active" example:"true"` // Inactive accounts are kept for history, but no longer updated
}

func newAccount(model models.Account) Account {
	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:           model.Name,
			AccountType:    model.AccountType,
			Currency:       model.Currency,
			CurrentBalance: model.CurrentBalance,
			InstitutionID:  model.InstitutionID,
		},
		IsActive: model.IsActive,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Router			/accounts [options]
func OptionsAccounts(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		List accounts
// @Description	Returns all accounts, oldest first
// @Tags			Accounts
// @Produce		json
// @Success		200	{array}		Account
// @Failure		500	{object}	httputil.HTTPError
// @Router			/accounts [get]
func GetAccounts(c *gin.Context) {
	var accounts []models.Account
	err := models.DB.Order("created_at ASC").Find(&accounts).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	data := make([]Account, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, newAccount(account))
	}

	c.JSON(http.StatusOK, data)
}

// @Summary		Create account
// @Description	Creates a new account
// @Tags			Accounts
// @Accept			json
// @Produce		json
// @Success		201		{object}	Account
// @Failure		400		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/accounts [post]
func CreateAccount(c *gin.Context) {
	var editable AccountEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		return
	}

	account := editable.model()
	err = models.DB.Create(&account).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusCreated, newAccount(account))
}
