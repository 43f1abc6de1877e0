package handler

import "github.com/labstack/echo/v4"

// GetAllIngredients lists distinct ingredient names.
func (h *Handler) GetAllIngredients(c echo.Context) error {
	rows, err := h.Ingredients.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "data", rows)
}
