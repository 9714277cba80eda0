package controllers_test

import (
	"net/http"
	"testing"

	"github.com/account-manager/backend/internal/controllers"
	"github.com/account-manager/backend/internal/models"
	"github.com/account-manager/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestAccount(t *testing.T, editable controllers.AccountEditable, expectedStatus ...int) controllers.Account {
	if editable.Name == "" {
		editable.Name = "Test Account"
	}
	if editable.AccountType == "" {
		editable.AccountType = models.AccountTypeChecking
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/accounts", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var account controllers.Account
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &account)
	}

	return account
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{
		Name:           "Everyday Checking",
		AccountType:    models.AccountTypeChecking,
		CurrentBalance: decimal.NewFromInt(1500),
	})

	assert.Equal(suite.T(), "Everyday Checking", account.Name)
	assert.Equal(suite.T(), models.AccountTypeChecking, account.AccountType)
	assert.True(suite.T(), account.IsActive)
	assert.NotEmpty(suite.T(), account.ID)

	// The currency defaults to USD when unset
	assert.Equal(suite.T(), "USD", account.Currency)
}

func (suite *TestSuiteStandard) TestAccountsCreateInvalidType() {
	r := test.Request(suite.T(), http.MethodPost, "/accounts", controllers.AccountEditable{
		Name:        "Money Bin",
		AccountType: "vault",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrAccountTypeInvalid.Error(), response.Error)
}

func (suite *TestSuiteStandard) TestAccountsCreateBrokenJSON() {
	r := test.Request(suite.T(), http.MethodPost, "/accounts", `{ "name": "`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsGet() {
	_ = createTestAccount(suite.T(), controllers.AccountEditable{Name: "First"})
	_ = createTestAccount(suite.T(), controllers.AccountEditable{Name: "Second", AccountType: models.AccountTypeSavings})

	r := test.Request(suite.T(), http.MethodGet, "/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var accounts []controllers.Account
	test.DecodeResponse(suite.T(), &r, &accounts)

	if assert.Len(suite.T(), accounts, 2) {
		assert.Equal(suite.T(), "First", accounts[0].Name)
		assert.Equal(suite.T(), "Second", accounts[1].Name)
	}
}

func (suite *TestSuiteStandard) TestAccountsGetEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// An empty list, not null
	assert.Equal(suite.T(), "[]", r.Body.String())
}

func (suite *TestSuiteStandard) TestAccountsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestAccountsMethodNotAllowed() {
	r := test.Request(suite.T(), http.MethodDelete, "/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), response.Error)
}
