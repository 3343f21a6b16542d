package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/societyhub/apartment-system/internal/core/domain"
)

// Keys under which the Auth middleware stores the resolved session.
const (
	CtxUserID    = "user_id"
	CtxUsername  = "username"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

// ctxActor extracts the actor injected by the Auth middleware. A missing
// user id or an unknown role means the middleware did not run: reject with 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get(CtxUserID).(int64)
	role, _ := c.Get(CtxRole).(domain.Role)
	if userID == 0 || !role.Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get(CtxUsername).(string)
	return domain.Actor{UserID: userID, Username: username, Role: role}, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
