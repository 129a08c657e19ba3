package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luminett/booking-api/internal/core/domain"
)

// clientEmail extracts the authenticated client's email from the claims the
// Auth middleware injected, failing fast before any service call. A client
// token without an email claim is structurally valid but operationally
// unusable, so it is rejected with 401.
func clientEmail(c echo.Context) (string, error) {
	role, _ := c.Get("role").(string)
	if role != domain.RoleClient {
		return "", echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	email, _ := c.Get("email").(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing client identity")
	}
	return email, nil
}
