package controllers

import (
	"net/http"
	"time"

	"github.com/account-manager/backend/internal/httputil"
	"github.com/account-manager/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", httputil.OptionsGet)
	r.GET("/summary", GetSummary)
}

// RegisterDueDateRoutes registers the routes for due date projections with
// the RouterGroup that is passed.
func RegisterDueDateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/upcoming", httputil.OptionsGet)
	r.GET("/upcoming", GetDueDates)
}

// @Summary		Dashboard summary
// @Description	Returns the aggregated totals shown at the top of the dashboard
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	models.DashboardSummary
// @Failure		500	{object}	httputil.HTTPError
// @Router			/dashboard/summary [get]
func GetSummary(c *gin.Context) {
	summary, err := models.Summary(models.DB)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary		Upcoming due dates
// @Description	Returns the upcoming payment due date for every card, soonest first
// @Tags			Dashboard
// @Produce		json
// @Success		200	{array}		models.DueDateItem
// @Failure		500	{object}	httputil.HTTPError
// @Router			/due-dates/upcoming [get]
func GetDueDates(c *gin.Context) {
	items, err := models.UpcomingDueDates(models.DB, time.Now().UTC())
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, items)
}
