package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/account-manager/backend/internal/cache"
	"github.com/account-manager/backend/internal/httputil"
	"github.com/account-manager/backend/internal/models"
	"github.com/account-manager/backend/internal/rewards"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecommendationCache caches best card recommendations. The in-memory
// default is replaced with Redis when REDIS_ADDR is set.
var RecommendationCache cache.Cache = cache.NewMemory()

const (
	ruleVersionKey    = "rewards:rules:version"
	recommendationTTL = 5 * time.Minute
	ruleVersionTTL    = 24 * time.Hour
)

// RegisterRewardRoutes registers the routes for reward rules with
// the RouterGroup that is passed.
func RegisterRewardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/rules", httputil.OptionsPost)
	r.POST("/rules", CreateRewardRule)
}

// RegisterRecommendationRoutes registers the routes for recommendations
// with the RouterGroup that is passed.
func RegisterRecommendationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/best-card", httputil.OptionsGet)
	r.GET("/best-card", GetBestCard)
}

type RewardRuleEditable struct {
	AccountID     uuid.UUID       `json:"account_id" binding:"required" example:"d2c0d0f8-5b69-4b69-9fcd-d3229e0dcb06"` // The credit card account the rule applies to
	Category      string          `json:"category" binding:"required" example:"dining"`                                 // Spending category the rule matches. Stored lowercased
	Multiplier    decimal.Decimal `json:"multiplier" example:"3" default:"1"`                                           // Points earned per currency unit
	PointCurrency string          `json:"point_currency" example:"membership rewards" default:"points"`                 // What the points are denominated in
}

// @Summary		Create reward rule
// @Description	Creates a reward rule for a credit card account
// @Tags			Rewards
// @Accept			json
// @Produce		json
// @Success		201		{object}	map[string]string
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			rule	body		RewardRuleEditable	true	"Reward rule"
// @Router			/rewards/rules [post]
func CreateRewardRule(c *gin.Context) {
	var editable RewardRuleEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		return
	}

	multiplier := editable.Multiplier
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}

	rule := models.RewardRule{
		AccountID:     editable.AccountID,
		Category:      editable.Category,
		Multiplier:    multiplier,
		PointCurrency: editable.PointCurrency,
	}
	err = models.DB.Create(&rule).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	bumpRuleVersion(c)

	c.JSON(http.StatusCreated, gin.H{
		"id":      rule.ID.String(),
		"message": "rule_created",
	})
}

// @Summary		Best card for a category
// @Description	Returns the card with the highest expected return for a spending category
// @Tags			Rewards
// @Produce		json
// @Success		200			{object}	rewards.Recommendation
// @Failure		400			{object}	httputil.HTTPError
// @Failure		404			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			category	query		string	true	"Spending category, at least 2 characters"
// @Param			amount		query		string	false	"Purchase amount"	default(100)
// @Router			/recommendations/best-card [get]
func GetBestCard(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	if len(category) < 2 {
		httputil.NewError(c, http.StatusBadRequest, errCategoryTooShort)
		return
	}

	amount := decimal.NewFromInt(100)
	if raw := c.Query("amount"); raw != "" {
		var err error
		amount, err = decimal.NewFromString(raw)
		if err != nil || !amount.IsPositive() {
			httputil.NewError(c, http.StatusBadRequest, errAmountNotPositive)
			return
		}
	}

	key := recommendationKey(c, category, amount)
	if cached, ok := RecommendationCache.Get(c.Request.Context(), key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	recommendation, err := rewards.BestCard(models.DB, category, amount)
	if err != nil {
		if errors.Is(err, rewards.ErrNoRuleForCategory) {
			httputil.NewError(c, http.StatusNotFound, err)
			return
		}
		httputil.NewError(c, status(err), err)
		return
	}

	body, err := json.Marshal(recommendation)
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, err)
		return
	}
	_ = RecommendationCache.Set(c.Request.Context(), key, string(body), recommendationTTL)

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// recommendationKey embeds the current rule version so that creating a
// rule invalidates all cached recommendations at once.
func recommendationKey(c *gin.Context, category string, amount decimal.Decimal) string {
	version, _ := RecommendationCache.Get(c.Request.Context(), ruleVersionKey)
	return fmt.Sprintf("rewards:best-card:%s:%s:%s", version, category, amount)
}

func bumpRuleVersion(c *gin.Context) {
	version, _ := RecommendationCache.Get(c.Request.Context(), ruleVersionKey)
	next, _ := strconv.Atoi(version)
	_ = RecommendationCache.Set(c.Request.Context(), ruleVersionKey, strconv.Itoa(next+1), ruleVersionTTL)
}
