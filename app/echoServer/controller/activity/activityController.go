package activity

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vanchien2973/MidAssignment-sub000/model"
	activitysvc "github.com/vanchien2973/MidAssignment-sub000/service/activity"
)

type Controller struct {
	Svc activitysvc.Service
	Log *slog.Logger
}

// GET /v1/activities  (admin)
func (h *Controller) List(c echo.Context) error {
	if role, _ := c.Get("role").(string); model.Role(role) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	rows, err := h.Svc.List(c.Request().Context(), limit)
	if err != nil {
		h.Log.Error("activity list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
