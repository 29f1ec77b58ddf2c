package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ctxSchool extracts the tenant identity injected by the Auth middleware.
// Its presence proves the middleware ran; a handler mounted outside the
// protected group fails closed here.
func ctxSchool(c echo.Context) (uuid.UUID, string, error) {
	schoolID, ok := c.Get("school_id").(uuid.UUID)
	if !ok || schoolID == uuid.Nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get("username").(string)
	return schoolID, username, nil
}
