package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"cafe-ordering/analysis"
	"cafe-ordering/apperr"
	"cafe-ordering/helpers"
	"cafe-ordering/models"

	"github.com/gin-gonic/gin"
)

type AnalysisStore interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListAnalytics(ctx context.Context) ([]models.AnalyticsCounter, error)
}

type AnalysisController struct {
	store AnalysisStore
	loc   *time.Location
	now   func() time.Time
}

func NewAnalysisController(store AnalysisStore, loc *time.Location) *AnalysisController {
	if loc == nil {
		loc = time.Local
	}
	return &AnalysisController{store: store, loc: loc, now: time.Now}
}

// GetMonthly reports one month, the current one unless month and year are
// given.
func (ac *AnalysisController) GetMonthly() gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "analysis.GetMonthly"
		ctx, cancel := requestContext(c)
		defer cancel()

		now := ac.now().In(ac.loc)
		month, year := now.Month(), now.Year()
		if v := c.Query("month"); v != "" {
			m, err := strconv.Atoi(v)
			if err != nil || m < 1 || m > 12 {
				helpers.RespondError(c, apperr.Validationf(op, "month must be between 1 and 12"))
				return
			}
			month = time.Month(m)
		}
		if v := c.Query("year"); v != "" {
			y, err := strconv.Atoi(v)
			if err != nil || y < 1 {
				helpers.RespondError(c, apperr.Validationf(op, "invalid year %q", v))
				return
			}
			year = y
		}

		all, err := ac.store.ListOrders(ctx)
		if err != nil {
			helpers.RespondError(c, apperr.Wrap(op, err))
			return
		}
		counters, err := ac.store.ListAnalytics(ctx)
		if err != nil {
			helpers.RespondError(c, apperr.Wrap(op, err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"report":   analysis.Monthly(all, month, year, ac.loc),
			"years":    analysis.Years(all, ac.loc),
			"counters": counters,
		})
	}
}
