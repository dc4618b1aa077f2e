package controllers

import (
	"context"
	"net/http"
	"time"

	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Reporter interface {
	Summary(ctx context.Context, actor services.Actor, f services.ReportFilter) (*services.ReportSummary, error)
	Today(ctx context.Context, actor services.Actor, salonID *uuid.UUID) ([]*services.BookingView, error)
}

// ReportController handles all reporting functions
type ReportController struct {
	reports Reporter
	now     func() time.Time
}

func NewReportController(reports Reporter) *ReportController {
	return &ReportController{reports: reports, now: time.Now}
}

// monthToDate is the first of the current month through today.
func (rc *ReportController) monthToDate() (time.Time, time.Time) {
	today := utils.BeginningOfDay(rc.now().UTC())
	return today.AddDate(0, 0, 1-today.Day()), today
}

// GetReportAnalytics summarizes bookings between ?from and ?to, defaulting to
// the current month.
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	salonID, ok := queryID(c, "salon_id")
	if !ok {
		return
	}
	from, ok := queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := queryDate(c, "to")
	if !ok {
		return
	}

	filter := services.ReportFilter{SalonID: salonID}
	filter.From, filter.To = rc.monthToDate()
	if from != nil {
		filter.From = *from
	}
	if to != nil {
		filter.To = *to
	}
	if filter.To.Before(filter.From) {
		utils.RespondWithError(c, http.StatusBadRequest, "from must not be after to")
		return
	}

	summary, err := rc.reports.Summary(c.Request.Context(), actor, filter)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
