package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/core/ports"
)

type MaintenanceHandler struct {
	service ports.MaintenanceService
}

func NewMaintenanceHandler(service ports.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// Create handles POST /api/maintenance. The request is filed by the caller
// and always starts pending.
//
// @Summary      File a maintenance request
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createMaintenanceRequest  true  "Request"
// @Success      201   {object}  domain.MaintenanceRequest
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/maintenance [post]
func (h *MaintenanceHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createMaintenanceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	mr, err := h.service.Create(c.Request().Context(), actor, ports.CreateMaintenanceInput{
		ApartmentID: req.ApartmentID,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, mr)
}

// List handles GET /api/maintenance.
//
// @Summary      List maintenance requests
// @Tags         maintenance
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.MaintenanceRequest
// @Failure      401  {object}  ErrorResponse
// @Router       /api/maintenance [get]
func (h *MaintenanceHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	reqs, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reqs)
}

// UpdateStatus handles PATCH /api/maintenance/:id.
//
// @Summary      Change a maintenance request status
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int            true  "Request id"
// @Param        body  body      statusRequest  true  "Target status"
// @Success      200   {object}  domain.MaintenanceRequest
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Router       /api/maintenance/{id} [patch]
func (h *MaintenanceHandler) UpdateStatus(c echo.Context) error {
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

	mr, err := h.service.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mr)
}
