package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/account-manager/backend/internal/controllers"
	"github.com/account-manager/backend/internal/models"
	"github.com/account-manager/backend/internal/rewards"
	"github.com/account-manager/backend/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRewardRuleCreate() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{
		Name:        "Visa",
		AccountType: models.AccountTypeCreditCard,
	})

	r := test.Request(suite.T(), http.MethodPost, "/rewards/rules", controllers.RewardRuleEditable{
		AccountID:  account.ID,
		Category:   "  Dining ",
		Multiplier: decimal.NewFromInt(3),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "rule_created", response.Message)
	assert.NotEmpty(suite.T(), response.ID)

	// The category is normalized on save
	var rule models.RewardRule
	require.NoError(suite.T(), models.DB.First(&rule, "id = ?", response.ID).Error)
	assert.Equal(suite.T(), "dining", rule.Category)
	assert.Equal(suite.T(), "points", rule.PointCurrency)
}

func (suite *TestSuiteStandard) TestRewardRuleCreateDefaults() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{
		Name:        "Visa",
		AccountType: models.AccountTypeCreditCard,
	})

	r := test.Request(suite.T(), http.MethodPost, "/rewards/rules", controllers.RewardRuleEditable{
		AccountID: account.ID,
		Category:  "travel",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response struct {
		ID string `json:"id"`
	}
	test.DecodeResponse(suite.T(), &r, &response)

	var rule models.RewardRule
	require.NoError(suite.T(), models.DB.First(&rule, "id = ?", response.ID).Error)
	assert.True(suite.T(), decimal.NewFromInt(1).Equal(rule.Multiplier), "multiplier is %s", rule.Multiplier)
}

func (suite *TestSuiteStandard) TestRewardRuleCreateAccountNotFound() {
	r := test.Request(suite.T(), http.MethodPost, "/rewards/rules", controllers.RewardRuleEditable{
		AccountID: uuid.New(),
		Category:  "dining",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBestCard() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{
		Name:        "Gold Card",
		AccountType: models.AccountTypeCreditCard,
	})

	r := test.Request(suite.T(), http.MethodPost, "/rewards/rules", controllers.RewardRuleEditable{
		AccountID:  account.ID,
		Category:   "dining",
		Multiplier: decimal.NewFromInt(4),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodGet, "/recommendations/best-card?category=dining&amount=50", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var recommendation rewards.Recommendation
	test.DecodeResponse(suite.T(), &r, &recommendation)

	assert.Equal(suite.T(), "Gold Card", recommendation.CardName)
	assert.Equal(suite.T(), account.ID, recommendation.AccountID)
	assert.True(suite.T(), decimal.NewFromInt(200).Equal(recommendation.ExpectedReturn), "expected return is %s", recommendation.ExpectedReturn)
	assert.Equal(suite.T(), "4.00x effective return (4 base + 0 offer bonus).", recommendation.Rationale)
}

func (suite *TestSuiteStandard) TestBestCardWithOffer() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{
		Name:        "Gold Card",
		AccountType: models.AccountTypeCreditCard,
	})

	r := test.Request(suite.T(), http.MethodPost, "/rewards/rules", controllers.RewardRuleEditable{
		AccountID:  account.ID,
		Category:   "dining",
		Multiplier: decimal.NewFromInt(2),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	validUntil := time.Now().UTC().Add(24 * time.Hour)
	require.NoError(suite.T(), models.DB.Create(&models.Offer{
		AccountID:       account.ID,
		Title:           "Extra dining points",
		Category:        "dining",
		BonusMultiplier: decimal.NewFromInt(1),
		ValidUntil:      &validUntil,
	}).Error)

	r = test.Request(suite.T(), http.MethodGet, "/recommendations/best-card?category=dining&amount=100", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var recommendation rewards.Recommendation
	test.DecodeResponse(suite.T(), &r, &recommendation)

	assert.True(suite.T(), decimal.NewFromInt(300).Equal(recommendation.ExpectedReturn), "expected return is %s", recommendation.ExpectedReturn)
	assert.Equal(suite.T(), "3.00x effective return (2 base + 1 offer bonus).", recommendation.Rationale)
}

func (suite *TestSuiteStandard) TestBestCardDefaultAmount() {
	account := createTestAccount(suite.T(), controllers.AccountEditable{
		Name:        "Gold Card",
		AccountType: models.AccountTypeCreditCard,
	})

	r := test.Request(suite.T(), http.MethodPost, "/rewards/rules", controllers.RewardRuleEditable{
		AccountID:  account.ID,
		Category:   "dining",
		Multiplier: decimal.NewFromInt(2),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	// Without an amount parameter, 100 is assumed
	r = test.Request(suite.T(), http.MethodGet, "/recommendations/best-card?category=dining", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var recommendation rewards.Recommendation
	test.DecodeResponse(suite.T(), &r, &recommendation)
	assert.True(suite.T(), decimal.NewFromInt(200).Equal(recommendation.ExpectedReturn), "expected return is %s", recommendation.ExpectedReturn)
}

func (suite *TestSuiteStandard) TestBestCardNoRules() {
	r := test.Request(suite.T(), http.MethodGet, "/recommendations/best-card?category=dining", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBestCardInvalidQuery() {
	tests := []struct {
		name  string
		query string
	}{
		{"category too short", "category=d"},
		{"category missing", "amount=50"},
		{"amount zero", "category=dining&amount=0"},
		{"amount negative", "category=dining&amount=-5"},
		{"amount not a number", "category=dining&amount=much"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "/recommendations/best-card?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}
