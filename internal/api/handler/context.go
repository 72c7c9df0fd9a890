package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bizreel/directory-api/internal/api/middleware"
	"github.com/bizreel/directory-api/internal/core/domain"
)

// ctxActor extracts the caller injected by the Auth middleware. A missing id
// or role means the route was mounted without Auth.
func ctxActor(c echo.Context) (domain.Actor, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(domain.Role)
	if id == "" || !role.Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Access denied. No token provided.")
	}
	return domain.Actor{ID: id, Role: role}, nil
}
