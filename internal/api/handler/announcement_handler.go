package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/core/ports"
)

type AnnouncementHandler struct {
	service ports.AnnouncementService
}

func NewAnnouncementHandler(service ports.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// Create handles POST /api/announcements.
//
// @Summary      Publish an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createAnnouncementRequest  true  "Announcement"
// @Success      201   {object}  domain.Announcement
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createAnnouncementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.service.Create(c.Request().Context(), actor, ports.CreateAnnouncementInput{
		Title:     req.Title,
		Content:   req.Content,
		Important: req.Important,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// List handles GET /api/announcements, newest first.
//
// @Summary      List announcements
// @Tags         announcements
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.Announcement
// @Router       /api/announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
