package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

// DashboardHandler serves the read-only dashboard rollups.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// activityResponse flattens an activity entry with its actor's username.
type activityResponse struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	BugID     uint      `json:"bug_id"`
	BugTitle  string    `json:"bug_title"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

func toActivityResponse(entry *domain.ActivityLog) activityResponse {
	username := "Unknown"
	if entry.User != nil {
		username = entry.User.Username
	}
	return activityResponse{
		ID:        entry.ID,
		Action:    entry.Action,
		BugID:     entry.BugID,
		BugTitle:  entry.BugTitle,
		UserID:    entry.UserID,
		Username:  username,
		Timestamp: entry.Timestamp,
	}
}

// Stats handles GET /dashboard/stats.
//
// @Summary      Bug statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.BugStats
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Workload handles GET /dashboard/workload.
//
// @Summary      Developer workload summary
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.DeveloperWorkload
// @Router       /dashboard/workload [get]
func (h *DashboardHandler) Workload(c echo.Context) error {
	workload, err := h.service.Workload(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workload)
}

// Activity handles GET /dashboard/activity.
//
// @Summary      Recent activity entries
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  activityResponse
// @Router       /dashboard/activity [get]
func (h *DashboardHandler) Activity(c echo.Context) error {
	entries, err := h.service.RecentActivity(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]activityResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toActivityResponse(entry))
	}
	return c.JSON(http.StatusOK, out)
}
