package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meal-planner/internal/repository"
)

type projectUsersRequest struct {
	Columns []string `json:"columns"`
}

func (h *Handler) GetAllUsers(c echo.Context) error {
	rows, err := h.Users.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "data", rows)
}

// ProjectUsers returns the requested user columns. Unknown names are
// dropped; the response lists the columns actually selected so positional
// rows can be labelled.
func (h *Handler) ProjectUsers(c echo.Context) error {
	var req projectUsersRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	rows, err := h.Users.Project(c.Request().Context(), req.Columns)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"columns": repository.ProjectedColumns(req.Columns),
		"data":    rows,
	})
}

// DivisionUsersFollowingAllMealPlans lists users actively following every meal plan.
func (h *Handler) DivisionUsersFollowingAllMealPlans(c echo.Context) error {
	rows, err := h.Users.FollowingAllMealPlans(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "rows", rows)
}
