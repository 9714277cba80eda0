package models

import (
	"github.com/google/uuid"
)

// PlaidItem stores a Plaid item (bank connection) and its encrypted
// access token.
type PlaidItem struct {
	DefaultModel
	ItemID               string      `json:"item_id" gorm:"uniqueIndex"`
	Institution          Institution `json:"-"`
	InstitutionID        *uuid.UUID  `json:"institution_id"`
	InstitutionName      string      `json:"institution_name"`
	AccessTokenEncrypted string      `json:"-"`
	IsActive             bool        `json:"is_active"`
}
