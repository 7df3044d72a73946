package borrow

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/vanchien2973/MidAssignment-sub000/model"
	bs "github.com/vanchien2973/MidAssignment-sub000/service/borrow"
	"github.com/vanchien2973/MidAssignment-sub000/service/policy"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func canApprove(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return model.Role(role).CanApprove()
}

// POST /v1/requests
// @Summary      Submit borrowing request
// @Description  Submit a borrowing request for a set of distinct books
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateRequestReq  true  "Request payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "policy violation"
// @Failure      404  {object}  map[string]any "unknown book"
// @Router       /v1/requests [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	id, err := h.Svc.Create(c.Request().Context(), uid, req.BookIDs, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrNoBooks),
			errors.Is(err, policy.ErrTooManyBooks),
			errors.Is(err, policy.ErrNoteRequired),
			errors.Is(err, policy.ErrMonthlyCapReached):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case bs.Code(err) == bs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		default:
			h.Log.Error("request create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"request_id": id})
}

// POST /v1/requests/:id/status  (approver)
func (h *Controller) UpdateStatus(c echo.Context) error {
	if !canApprove(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	err = h.Svc.UpdateStatus(c.Request().Context(), id, uid, model.RequestStatus(req.Status), req.Notes, req.DueDays)
	if err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "request not found"})
		case bs.ErrAlreadyProcessed:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "request already processed"})
		case bs.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status"})
		case bs.ErrNoStock:
			return c.JSON(http.StatusConflict, echo.Map{"message": "no copies available"})
		default:
			h.Log.Error("request status", "err", err, "request_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// POST /v1/details/:id/extend
func (h *Controller) Extend(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ExtendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Extend(c.Request().Context(), id, uid, req.NewDueDate); err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "detail not found"})
		case bs.ErrAlreadyExtended:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "already extended"})
		case bs.ErrAlreadyReturned:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "already returned"})
		case bs.ErrNotBorrowing, bs.ErrNoDueDate:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "detail is not borrowing"})
		case bs.ErrExtensionTooFar:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "extension window exceeded"})
		default:
			h.Log.Error("detail extend", "err", err, "detail_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// POST /v1/details/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Return(c.Request().Context(), id, uid, req.Note); err != nil {
		switch bs.Code(err) {
		case bs.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "detail not found"})
		case bs.ErrAlreadyReturned:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "already returned"})
		case bs.ErrNotBorrowing:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "detail is not on loan"})
		default:
			h.Log.Error("detail return", "err", err, "detail_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GET /v1/requests/my
func (h *Controller) My(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.MyRequests(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("request my", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/requests  (approver)
func (h *Controller) List(c echo.Context) error {
	if !canApprove(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	status := model.RequestStatus(c.QueryParam("status"))
	switch status {
	case "", model.RequestWaiting, model.RequestApproved, model.RequestRejected:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status filter"})
	}
	rows, err := h.Svc.List(c.Request().Context(), status)
	if err != nil {
		h.Log.Error("request list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/requests/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	req, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("request detail", "err", err, "request_id", id)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if req == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	}
	uid, _ := c.Get("user_id").(int64)
	if req.RequestorID != uid && !canApprove(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	return c.JSON(http.StatusOK, req)
}

// GET /v1/details/overdue  (approver)
func (h *Controller) Overdue(c echo.Context) error {
	if !canApprove(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	rows, err := h.Svc.Overdue(c.Request().Context())
	if err != nil {
		h.Log.Error("overdue list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
