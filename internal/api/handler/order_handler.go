package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for work-order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /v1/orders.
//
// @Summary      Create a new work order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order details"
// @Success      201   {object}  domain.WorkOrder
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.CreateOrder(c.Request().Context(), toCreateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// List handles GET /v1/orders. Workers only see orders assigned to them;
// admins and auditors see everything unless they filter explicitly.
//
// @Summary      List work orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "Filter by status"
// @Param        priority     query  string  false  "Filter by priority"
// @Param        assigned_to  query  string  false  "Filter by assignee id"
// @Param        search       query  string  false  "Partial match on id or title"
// @Param        page         query  int     false  "Page (1-based)"
// @Param        limit        query  int     false  "Rows per page (max 100)"
// @Success      200  {object}  listOrdersResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	assignedTo := c.QueryParam("assigned_to")
	if role == string(domain.RoleWorker) {
		assignedTo = userID
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListOrders(c.Request().Context(), ports.ListOrdersInput{
		AssignedToID: assignedTo,
		Status:       c.QueryParam("status"),
		Priority:     c.QueryParam("priority"),
		Search:       c.QueryParam("search"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []*domain.WorkOrder{}
	}
	return c.JSON(http.StatusOK, listOrdersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Get a work order by id
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Order id (e.g. OS-2026-4821)"
// @Success      200  {object}  domain.WorkOrder
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.service.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Edit handles PUT /v1/orders/:id — full replacement of the mutable fields.
//
// @Summary      Edit a work order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Order id"
// @Param        body  body      editOrderRequest  true  "Replacement fields"
// @Success      200   {object}  domain.WorkOrder
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/orders/{id} [put]
func (h *OrderHandler) Edit(c echo.Context) error {
	var req editOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.EditOrder(c.Request().Context(), toEditInput(c.Param("id"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /v1/orders/:id.
//
// @Summary      Delete a work order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Order id"
// @Success      204  "order removed"
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus handles PATCH /v1/orders/:id/status.
//
// @Summary      Update a work order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Order id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      204   "status updated"
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, _, err := ctxClaims(c)
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

	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Complete handles POST /v1/orders/:id/complete.
//
// @Summary      Complete a work order with photo evidence
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Order id"
// @Param        body  body      completeOrderRequest  true  "Evidence image and analysis"
// @Success      204   "order completed"
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req completeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.CompleteOrder(c.Request().Context(), c.Param("id"), req.EvidenceImage, req.AnalysisLog, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetScheduleURL handles GET /v1/schedule-url.
//
// @Summary      Get the external schedule URL
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  scheduleURLResponse
// @Router       /v1/schedule-url [get]
func (h *OrderHandler) GetScheduleURL(c echo.Context) error {
	url, err := h.service.ScheduleURL(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scheduleURLResponse{URL: url})
}

// UpdateScheduleURL handles PUT /v1/schedule-url.
//
// @Summary      Update the external schedule URL
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  scheduleURLRequest  true  "Free-text URL"
// @Success      204   "url stored"
// @Router       /v1/schedule-url [put]
func (h *OrderHandler) UpdateScheduleURL(c echo.Context) error {
	var req scheduleURLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.UpdateScheduleURL(c.Request().Context(), req.URL); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
