package controllers_test

import (
	"net/http"
	"time"

	"github.com/account-manager/backend/internal/controllers"
	"github.com/account-manager/backend/internal/models"
	"github.com/account-manager/backend/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDashboardSummary() {
	_ = createTestAccount(suite.T(), controllers.AccountEditable{Name: "Checking", AccountType: models.AccountTypeChecking, CurrentBalance: decimal.NewFromInt(600)})
	_ = createTestAccount(suite.T(), controllers.AccountEditable{Name: "Savings", AccountType: models.AccountTypeSavings, CurrentBalance: decimal.NewFromInt(400)})
	_ = createTestAccount(suite.T(), controllers.AccountEditable{Name: "Broker", AccountType: models.AccountTypeInvestment, CurrentBalance: decimal.NewFromInt(300)})
	_ = createTestAccount(suite.T(), controllers.AccountEditable{Name: "401k", AccountType: models.AccountTypeRetirement, CurrentBalance: decimal.NewFromInt(200)})
	_ = createTestCard(suite.T(), controllers.CardEditable{})

	// Card debt is stored negative, but reported as the absolute amount
	r := test.Request(suite.T(), http.MethodPost, "/accounts", controllers.AccountEditable{
		Name:           "Visa",
		AccountType:    models.AccountTypeCreditCard,
		CurrentBalance: decimal.NewFromInt(-150),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, "/dashboard/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var summary models.DashboardSummary
	test.DecodeResponse(suite.T(), &r, &summary)

	assert.True(suite.T(), decimal.NewFromInt(1000).Equal(summary.TotalCash), "total cash is %s", summary.TotalCash)
	assert.True(suite.T(), decimal.NewFromInt(500).Equal(summary.TotalInvestments), "total investments is %s", summary.TotalInvestments)
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(summary.TotalCardDebt), "total card debt is %s", summary.TotalCardDebt)
	assert.Equal(suite.T(), int64(1), summary.UpcomingDueCount)
}

func (suite *TestSuiteStandard) TestDueDatesUpcoming() {
	_ = createTestCard(suite.T(), controllers.CardEditable{DueDay: 5})

	account := createTestAccount(suite.T(), controllers.AccountEditable{Name: "Second Card Account", AccountType: models.AccountTypeCreditCard})
	_ = createTestCard(suite.T(), controllers.CardEditable{AccountID: account.ID, DueDay: 27})

	r := test.Request(suite.T(), http.MethodGet, "/due-dates/upcoming", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var items []models.DueDateItem
	test.DecodeResponse(suite.T(), &r, &items)

	if !assert.Len(suite.T(), items, 2) {
		return
	}

	// Sorted by days remaining, soonest first
	assert.LessOrEqual(suite.T(), items[0].DaysRemaining, items[1].DaysRemaining)

	for _, item := range items {
		due, err := time.Parse("2006-01-02", item.DueDate)
		assert.NoError(suite.T(), err)
		assert.GreaterOrEqual(suite.T(), item.DaysRemaining, 0)
		assert.False(suite.T(), due.IsZero())
	}
}

func (suite *TestSuiteStandard) TestDueDatesEmpty() {
	r := test.Request(suite.T(), http.MethodGet, "/due-dates/upcoming", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), "[]", r.Body.String())
}
