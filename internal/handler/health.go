package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is a liveness probe. It never touches the database.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// CheckDBConnection answers "connected" when a pooled connection can be
// borrowed and pinged, "unable to connect" otherwise. Both are 200.
func (h *Handler) CheckDBConnection(c echo.Context) error {
	if h.Setup.Ping(c.Request().Context()) {
		return c.String(http.StatusOK, "connected")
	}
	return c.String(http.StatusOK, "unable to connect")
}
