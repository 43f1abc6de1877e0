package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/meal-planner/internal/model"
	"github.com/iliyamo/meal-planner/internal/queue"
)

type insertFollowRequest struct {
	UserID   Field `json:"usrId"`
	MealPlan Field `json:"mid"`
	IsActive Field `json:"isActive"`
}

// GetAllFollow lists every follow row.
func (h *Handler) GetAllFollow(c echo.Context) error {
	rows, err := h.Follows.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return rowsOK(c, "rows", rows)
}

// InsertFollow makes a user follow a meal plan.
func (h *Handler) InsertFollow(c echo.Context) error {
	var req insertFollowRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	uid, err := req.UserID.Int64()
	if err != nil {
		return badRequest(c, "usrId must be a number")
	}
	mid, err := req.MealPlan.Int64()
	if err != nil {
		return badRequest(c, "mid must be a number")
	}

	f := model.NewFollow{UserID: uid, MealPlanID: mid, IsActive: req.IsActive.Bool()}
	out, err := h.Follows.Insert(c.Request().Context(), f)
	if err != nil {
		return fail(c, err)
	}

	ev := queue.NewChangeEvent(queue.KindFollowInserted, "follow", map[string]any{"usrid": uid, "mid": mid})
	ev.Fields = map[string]any{"isactive": f.IsActive}
	return h.written(c, out, ev)
}
