package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bugtracker-pro/bugtracker/internal/api/metrics"
	"github.com/bugtracker-pro/bugtracker/internal/core/domain"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

// BugHandler handles HTTP requests for the bug lifecycle.
type BugHandler struct {
	service ports.BugService
}

func NewBugHandler(service ports.BugService) *BugHandler {
	return &BugHandler{service: service}
}

// bugID parses the :id route parameter. A non-numeric id cannot reference
// any bug, so it maps to 404 rather than 400.
func bugID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "bug not found")
	}
	return uint(id), nil
}

// Create handles POST /bugs.
//
// @Summary      Create a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBugRequest  true  "Bug details"
// @Success      201   {object}  domain.Bug
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /bugs [post]
func (h *BugHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bug, err := h.service.Create(c.Request().Context(), actor, ports.CreateBugInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return err
	}

	metrics.BugsCreatedTotal.WithLabelValues(string(bug.Priority)).Inc()
	metrics.BugMutationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, bug)
}

// Get handles GET /bugs/:id.
//
// @Summary      Get a bug
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Bug id"
// @Success      200  {object}  domain.Bug
// @Failure      404  {object}  errorResponse
// @Router       /bugs/{id} [get]
func (h *BugHandler) Get(c echo.Context) error {
	id, err := bugID(c)
	if err != nil {
		return err
	}

	bug, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bug)
}

// List handles GET /bugs with optional filters.
//
// @Summary      List bugs
// @Tags         bugs
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "Filter by status (or 'all')"
// @Param        priority     query  string  false  "Filter by priority (or 'all')"
// @Param        assigned_to  query  string  false  "Developer id, 'unassigned', or 'all'"
// @Param        search       query  string  false  "Case-insensitive substring over title and description"
// @Success      200  {array}   domain.Bug
// @Failure      400  {object}  errorResponse
// @Router       /bugs [get]
func (h *BugHandler) List(c echo.Context) error {
	filter, err := listFilter(c)
	if err != nil {
		return err
	}

	bugs, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if bugs == nil {
		bugs = []*domain.Bug{}
	}
	return c.JSON(http.StatusOK, bugs)
}

// listFilter translates the query string into a typed filter. "all" and
// empty both mean "no filter" for every parameter.
func listFilter(c echo.Context) (ports.ListBugsFilter, error) {
	filter := ports.ListBugsFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
	}

	if status := c.QueryParam("status"); status != "" && status != "all" {
		filter.Status = domain.BugStatus(status)
	}
	if priority := c.QueryParam("priority"); priority != "" && priority != "all" {
		filter.Priority = domain.BugPriority(priority)
	}

	switch assigned := c.QueryParam("assigned_to"); assigned {
	case "", "all":
	case "unassigned":
		filter.Unassigned = true
	default:
		id, err := strconv.ParseUint(assigned, 10, 32)
		if err != nil {
			return ports.ListBugsFilter{}, echo.NewHTTPError(http.StatusBadRequest, "assigned_to must be a user id, 'unassigned', or 'all'")
		}
		uid := uint(id)
		filter.AssignedTo = &uid
	}

	return filter, nil
}

// Update handles PUT /bugs/:id (partial update).
//
// @Summary      Update a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Bug id"
// @Param        body  body      updateBugRequest  true  "Fields to update"
// @Success      200   {object}  domain.Bug
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bugs/{id} [put]
func (h *BugHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := bugID(c)
	if err != nil {
		return err
	}

	var req updateBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bug, err := h.service.Update(c.Request().Context(), actor, id, ports.UpdateBugInput{
		Title:         req.Title,
		Description:   req.Description,
		Priority:      req.Priority,
		Status:        req.Status,
		AssignedTo:    req.AssignedTo.value,
		AssignedToSet: req.AssignedTo.set,
	})
	if err != nil {
		return err
	}

	metrics.BugMutationsTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, bug)
}

// UpdateStatus handles PATCH /bugs/:id/status.
//
// @Summary      Change a bug's status
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Bug id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Bug
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bugs/{id}/status [patch]
func (h *BugHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := bugID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bug, err := h.service.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return err
	}

	metrics.BugMutationsTotal.WithLabelValues("status_changed").Inc()
	return c.JSON(http.StatusOK, bug)
}

// Assign handles PATCH /bugs/:id/assign (admin only, gated by RBAC).
//
// @Summary      Assign or unassign a bug
// @Tags         bugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Bug id"
// @Param        body  body      assignBugRequest  true  "Developer id, or null to unassign"
// @Success      200   {object}  domain.Bug
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bugs/{id}/assign [patch]
func (h *BugHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := bugID(c)
	if err != nil {
		return err
	}

	var req assignBugRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	bug, err := h.service.Assign(c.Request().Context(), actor, id, req.AssignedTo)
	if err != nil {
		return err
	}

	metrics.BugMutationsTotal.WithLabelValues("assigned").Inc()
	return c.JSON(http.StatusOK, bug)
}

// Delete handles DELETE /bugs/:id (admin only, gated by RBAC).
//
// @Summary      Delete a bug
// @Tags         bugs
// @Security     BearerAuth
// @Param        id  path  int  true  "Bug id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /bugs/{id} [delete]
func (h *BugHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := bugID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}

	metrics.BugMutationsTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}
