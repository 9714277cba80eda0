package controllers

import (
	"net/http"

	"github.com/account-manager/backend/internal/httputil"
	"github.com/account-manager/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterCardRoutes registers the routes for credit cards with
// the RouterGroup that is passed.
func RegisterCardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsCards)
	r.GET("", GetCards)
	r.POST("", CreateCard)
}

type CardEditable struct {
	AccountID    uuid.UUID        `json:"account_id" binding:"required" example:"d2c0d0f8-5b69-4b69-9fcd-d3229e0dcb06"` // The credit card account this card belongs to
	IssuerName   string           `json:"issuer_name" binding:"required" example:"Chase"`                               // Name of the issuing bank
	APR          *decimal.Decimal `json:"apr" example:"24.99" default:"null"`                                           // Annual percentage rate
	StatementDay int              `json:"statement_day" example:"5" default:"1"`                                        // Day of month the statement closes
	DueDay       int              `json:"due_day" example:"28" default:"20"`                                            // Day of month the payment is due
	MinPaymentDue decimal.Decimal `json:"min_payment_due" example:"35.00"`                                              // Minimum payment for the current cycle
}

// model returns the database resource for the API representation of the editable fields
func (editable CardEditable) model() models.CreditCardDetail {
	statementDay := editable.StatementDay
	if statementDay == 0 {
		statementDay = 1
	}

	dueDay := editable.DueDay
	if dueDay == 0 {
		dueDay = 20
	}

	return models.CreditCardDetail{
		AccountID:     editable.AccountID,
		IssuerName:    editable.IssuerName,
		APR:           editable.APR,
		StatementDay:  statementDay,
		DueDay:        dueDay,
		MinPaymentDue: editable.MinPaymentDue,
	}
}

// Card is the API representation of a credit card detail record.
type Card struct {
	models.DefaultModel
	CardEditable
}

func newCard(model models.CreditCardDetail) Card {
	return Card{
		DefaultModel: model.DefaultModel,
		CardEditable: CardEditable{
			AccountID:     model.AccountID,
			IssuerName:    model.IssuerName,
			APR:           model.APR,
			StatementDay:  model.StatementDay,
			DueDay:        model.DueDay,
			MinPaymentDue: model.MinPaymentDue,
		},
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cards
// @Success		204
// @Router			/cards [options]
func OptionsCards(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		List cards
// @Description	Returns all credit card detail records
// @Tags			Cards
// @Produce		json
// @Success		200	{array}		Card
// @Failure		500	{object}	httputil.HTTPError
// @Router			/cards [get]
func GetCards(c *gin.Context) {
	var cards []models.CreditCardDetail
	err := models.DB.Order("created_at ASC").Find(&cards).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	data := make([]Card, 0, len(cards))
	for _, card := range cards {
		data = append(data, newCard(card))
	}

	c.JSON(http.StatusOK, data)
}

// @Summary		Create card
// @Description	Creates a credit card detail record for a credit card account
// @Tags			Cards
// @Accept			json
// @Produce		json
// @Success		201		{object}	Card
// @Failure		400		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			card	body		CardEditable	true	"Card"
// @Router			/cards [post]
func CreateCard(c *gin.Context) {
	var editable CardEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		return
	}

	card := editable.model()
	err = models.DB.Create(&card).Error
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusCreated, newCard(card))
}
