package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/core/ports"
)

// ApartmentHandler handles HTTP requests for apartments.
type ApartmentHandler struct {
	service ports.ApartmentService
}

func NewApartmentHandler(service ports.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{service: service}
}

// ListResident handles GET /api/apartments.
//
// @Summary      List the caller's apartments
// @Description  Apartments the caller is tenant of.
// @Tags         apartments
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.Apartment
// @Failure      401  {object}  ErrorResponse
// @Router       /api/apartments [get]
func (h *ApartmentHandler) ListResident(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	apts, err := h.service.ListResident(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apts)
}

// ListManaged handles GET /api/apartments/all.
//
// @Summary      List managed apartments
// @Description  Owners see the apartments they own, managers and security see all.
// @Tags         apartments
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.Apartment
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /api/apartments/all [get]
func (h *ApartmentHandler) ListManaged(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	apts, err := h.service.ListManaged(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apts)
}

// Create handles POST /api/apartments.
//
// @Summary      Create an apartment
// @Tags         apartments
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createApartmentRequest  true  "Apartment"
// @Success      201   {object}  domain.Apartment
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/apartments [post]
func (h *ApartmentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createApartmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	apt, err := h.service.Create(c.Request().Context(), actor, toApartmentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, apt)
}

// Update handles PATCH /api/apartments/:id.
//
// @Summary      Update an apartment
// @Description  Owners may only modify apartments they own.
// @Tags         apartments
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      int                     true  "Apartment id"
// @Param        body  body      updateApartmentRequest  true  "Fields to change"
// @Success      200   {object}  domain.Apartment
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/apartments/{id} [patch]
func (h *ApartmentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateApartmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	apt, err := h.service.Update(c.Request().Context(), actor, id, toApartmentPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apt)
}
