package controllers_test

import (
	"net/http"
	"testing"

	"github.com/account-manager/backend/internal/controllers"
	"github.com/account-manager/backend/internal/models"
	"github.com/account-manager/backend/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestCard(t *testing.T, editable controllers.CardEditable, expectedStatus ...int) controllers.Card {
	if editable.AccountID == uuid.Nil {
		editable.AccountID = createTestAccount(t, controllers.AccountEditable{
			Name:        "Card Account",
			AccountType: models.AccountTypeCreditCard,
		}).ID
	}
	if editable.IssuerName == "" {
		editable.IssuerName = "Chase"
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, "/cards", editable)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var card controllers.Card
	if r.Code == http.StatusCreated {
		test.DecodeResponse(t, &r, &card)
	}

	return card
}

func (suite *TestSuiteStandard) TestCardsCreate() {
	card := createTestCard(suite.T(), controllers.CardEditable{IssuerName: "Chase"})

	assert.Equal(suite.T(), "Chase", card.IssuerName)

	// Statement and due day are defaulted when not set
	assert.Equal(suite.T(), 1, card.StatementDay)
	assert.Equal(suite.T(), 20, card.DueDay)
}

func (suite *TestSuiteStandard) TestCardsCreateAccountNotCreditCard() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{
		Name:        "Checking",
		AccountType: models.AccountTypeChecking,
	})

	r := test.Request(suite.T(), http.MethodPost, "/cards", controllers.CardEditable{
		AccountID:  account.ID,
		IssuerName: "Chase",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCardAccountNotCreditCard.Error(), response.Error)
}

func (suite *TestSuiteStandard) TestCardsCreateAccountNotFound() {
	r := test.Request(suite.T(), http.MethodPost, "/cards", controllers.CardEditable{
		AccountID:  uuid.New(),
		IssuerName: "Chase",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCardsCreateDuplicate() {
	card := createTestCard(suite.T(), controllers.CardEditable{})

	r := test.Request(suite.T(), http.MethodPost, "/cards", controllers.CardEditable{
		AccountID:  card.AccountID,
		IssuerName: "Amex",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCardExists.Error(), response.Error)
}

func (suite *TestSuiteStandard) TestCardsCreateDayOutOfRange() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{
		Name:        "Card Account",
		AccountType: models.AccountTypeCreditCard,
	})

	tests := []struct {
		name     string
		editable controllers.CardEditable
		err      error
	}{
		{"due day too large", controllers.CardEditable{AccountID: account.ID, IssuerName: "Chase", DueDay: 32}, models.ErrDueDayOutOfRange},
		{"statement day too large", controllers.CardEditable{AccountID: account.ID, IssuerName: "Chase", StatementDay: 42}, models.ErrStatementDayOutOfRange},
		{"negative minimum payment", controllers.CardEditable{AccountID: account.ID, IssuerName: "Chase", MinPaymentDue: decimal.NewFromInt(-1)}, models.ErrMinPaymentNegative},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/cards", tt.editable)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response struct {
				Error string `json:"error"`
			}
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err.Error(), response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestCardsGet() {
	_ = createTestCard(suite.T(), controllers.CardEditable{})

	r := test.Request(suite.T(), http.MethodGet, "/cards", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var cards []controllers.Card
	test.DecodeResponse(suite.T(), &r, &cards)
	assert.Len(suite.T(), cards, 1)
}

func (suite *TestSuiteStandard) TestCardsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "/cards", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}
