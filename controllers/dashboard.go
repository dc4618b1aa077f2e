package controllers

import (
	"net/http"

	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	Month         *services.ReportSummary `json:"month"`
	TodayBookings []*services.BookingView `json:"todayBookings"`
}

// GetDashboardOverview returns month-to-date figures and today's schedule
func (rc *ReportController) GetDashboardOverview(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	salonID, ok := queryID(c, "salon_id")
	if !ok {
		return
	}

	from, to := rc.monthToDate()
	month, err := rc.reports.Summary(c.Request.Context(), actor, services.ReportFilter{SalonID: salonID, From: from, To: to})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	today, err := rc.reports.Today(c.Request.Context(), actor, salonID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardOverview{Month: month, TodayBookings: today})
}
