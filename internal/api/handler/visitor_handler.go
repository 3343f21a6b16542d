package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/core/ports"
)

// VisitorHandler handles visitor registration and the gate workflow.
type VisitorHandler struct {
	service ports.VisitorService
}

func NewVisitorHandler(service ports.VisitorService) *VisitorHandler {
	return &VisitorHandler{service: service}
}

// Create handles POST /api/visitors. New visitors always start upcoming.
//
// @Summary      Register an expected visitor
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createVisitorRequest  true  "Visitor"
// @Success      201   {object}  domain.Visitor
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/visitors [post]
func (h *VisitorHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createVisitorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	v, err := h.service.Create(c.Request().Context(), actor, toVisitorInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

// List handles GET /api/visitors.
//
// @Summary      List visitors
// @Description  Tenants see the visitors of their first apartment, everyone else sees all.
// @Tags         visitors
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.Visitor
// @Failure      401  {object}  ErrorResponse
// @Router       /api/visitors [get]
func (h *VisitorHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	visitors, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, visitors)
}

// UpdateStatus handles PATCH /api/visitors/:id/status.
//
// @Summary      Change a visitor status
// @Description  Moving a pending visitor to current or past approves or denies the visit.
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int            true  "Visitor id"
// @Param        body  body      statusRequest  true  "Target status (upcoming, current, past)"
// @Success      200   {object}  domain.Visitor
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/visitors/{id}/status [patch]
func (h *VisitorHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	v, err := h.service.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// CheckIn handles POST /api/visitors/:id/check-in.
//
// @Summary      Check a visitor in at the gate
// @Tags         visitors
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      int  true  "Visitor id"
// @Success      200  {object}  domain.Visitor
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /api/visitors/{id}/check-in [post]
func (h *VisitorHandler) CheckIn(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	v, err := h.service.CheckIn(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// RequestApproval handles POST /api/visitors/:id/request-approval.
//
// @Summary      Ask residents to approve a pending visitor
// @Tags         visitors
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      int  true  "Visitor id"
// @Success      200  {object}  approvalResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /api/visitors/{id}/request-approval [post]
func (h *VisitorHandler) RequestApproval(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	v, err := h.service.RequestApproval(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approvalResponse{
		Success: true,
		Message: "Approval request sent to owner and tenant",
		Visitor: v,
	})
}

// Notify handles POST /api/visitors/:id/notify.
//
// @Summary      Notify residents about a visitor
// @Tags         visitors
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      int  true  "Visitor id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/visitors/{id}/notify [post]
func (h *VisitorHandler) Notify(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Notify(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Notification sent successfully"})
}
