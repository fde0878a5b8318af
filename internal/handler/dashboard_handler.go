package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avellar-lune/academy-records/internal/service"
	"github.com/avellar-lune/academy-records/pkg/response"
)

// DashboardHandler wires the dashboard service to HTTP endpoints.
type DashboardHandler struct {
	dashboard *service.DashboardService
	activity  *service.ActivityService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(dashboard *service.DashboardService, activity *service.ActivityService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, activity: activity}
}

// Summary returns record counts plus the recent activity feed.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// Counts returns aggregate record totals only.
func (h *DashboardHandler) Counts(c *gin.Context) {
	counts, err := h.dashboard.Counts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, counts)
}

// Activity returns the recent activity feed, newest first.
func (h *DashboardHandler) Activity(c *gin.Context) {
	activities, err := h.activity.Recent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities)
}
