package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Create handles POST /api/payments.
//
// @Summary      Record a payment
// @Description  tenantId defaults to the caller. Tenants can only record their own payments.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createPaymentRequest  true  "Payment"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), actor, toPaymentInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// CaptureUPI handles POST /api/payments/upi. No gateway is contacted.
//
// @Summary      Pay through UPI
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      upiPaymentRequest  true  "UPI payment"
// @Success      201   {object}  upiPaymentResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /api/payments/upi [post]
func (h *PaymentHandler) CaptureUPI(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req upiPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.CaptureUPI(c.Request().Context(), actor, toUPIInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, upiPaymentResponse{Success: true, Payment: p})
}

// List handles GET /api/payments.
//
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     SessionCookie
// @Success      200  {array}   domain.Payment
// @Failure      401  {object}  ErrorResponse
// @Router       /api/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	payments, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}
