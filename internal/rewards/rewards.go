package rewards

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/account-manager/backend/internal/models"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNoRuleForCategory = errors.New("no reward rules found for this category")

// Recommendation is the result of matching a spending category against the
// reward rules. It is a transient read model and never persisted here.
type Recommendation struct {
	Category       string          `json:"category"`
	AccountID      uuid.UUID       `json:"account_id"`
	CardName       string          `json:"card_name"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	Rationale      string          `json:"rationale"`
}

// BestCard returns the card account with the highest expected return for
// the category.
//
// A rule matches when its category equals the normalized input, or when the
// stored category used as a glob pattern matches it. On top of the rule
// multiplier, the highest applicable offer bonus for the same account is
// added: offers match on equal category or on an empty (catch-all) category
// and must not be expired.
func BestCard(db *gorm.DB, category string, amount decimal.Decimal) (Recommendation, error) {
	normalized := strings.ToLower(strings.TrimSpace(category))

	var rules []models.RewardRule
	err := db.Find(&rules).Error
	if err != nil {
		return Recommendation{}, err
	}

	var best *Recommendation
	for _, rule := range rules {
		if rule.Category != normalized && !glob.Glob(rule.Category, normalized) {
			continue
		}

		var account models.Account
		err := db.First(&account, "id = ?", rule.AccountID).Error
		if err != nil {
			return Recommendation{}, err
		}

		bonus, err := bestOfferBonus(db, rule.AccountID, normalized)
		if err != nil {
			return Recommendation{}, err
		}

		multiplier := rule.Multiplier.Add(bonus)
		candidate := Recommendation{
			Category:       normalized,
			AccountID:      account.ID,
			CardName:       account.Name,
			ExpectedReturn: amount.Mul(multiplier).Round(2),
			Rationale:      fmt.Sprintf("%sx effective return (%s base + %s offer bonus).", multiplier.StringFixed(2), rule.Multiplier.String(), bonus.String()),
		}

		if best == nil || candidate.ExpectedReturn.GreaterThan(best.ExpectedReturn) {
			best = &candidate
		}
	}

	if best == nil {
		return Recommendation{}, ErrNoRuleForCategory
	}

	return *best, nil
}

// bestOfferBonus returns the highest active offer bonus for the account and
// category. No matching offer means a zero bonus, not an error.
func bestOfferBonus(db *gorm.DB, accountID uuid.UUID, category string) (decimal.Decimal, error) {
	var offers []models.Offer
	err := db.
		Where("account_id = ?", accountID).
		Where("category = ? OR category = ''", category).
		Order("bonus_multiplier DESC").
		Find(&offers).Error
	if err != nil {
		return decimal.Zero, err
	}

	now := time.Now().In(time.UTC)
	for _, offer := range offers {
		if offer.ValidUntil != nil && offer.ValidUntil.Before(now) {
			continue
		}
		return offer.BonusMultiplier, nil
	}

	return decimal.Zero, nil
}
