package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rishebss/fifac-backend/attendance"
)

type AttendanceHandler struct {
	rec *attendance.Reconciler
}

func NewAttendanceHandler(rec *attendance.Reconciler) *AttendanceHandler {
	return &AttendanceHandler{rec: rec}
}

// attendanceError maps reconciler errors onto distinct responses.
func attendanceError(c echo.Context, err error) error {
	var verr *attendance.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{verr.Field: verr.Message},
		})
	}
	if errors.Is(err, attendance.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "STORE_UNAVAILABLE"})
}

// parseDay accepts a bare day or a full RFC3339 timestamp.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// GET /attendance?studentId=&year=&month=  or  ?studentId=&startDate=&endDate=
func (h *AttendanceHandler) List(c echo.Context) error {
	studentID := uint(atoiOr(c.QueryParam("studentId"), 0))
	if studentID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	return h.listRange(c, studentID, c.QueryParam("startDate"), c.QueryParam("endDate"))
}

// GET /attendance/student/:id?year=&month=
func (h *AttendanceHandler) ListByStudent(c echo.Context) error {
	studentID := uint(atoiOr(c.Param("id"), 0))
	if studentID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	return h.listRange(c, studentID, "", "")
}

func (h *AttendanceHandler) listRange(c echo.Context, studentID uint, start, end string) error {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	if start != "" && end != "" {
		for _, d := range []string{start, end} {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{
					"error":  "VALIDATION_ERROR",
					"fields": map[string]string{"date": "must be YYYY-MM-DD"},
				})
			}
		}
		rows, err := h.rec.StudentRange(c.Request().Context(), studentID, start, end)
		if err != nil {
			return attendanceError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	}

	year := atoiOr(c.QueryParam("year"), 0)
	month := atoiOr(c.QueryParam("month"), 0)
	if year == 0 || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	rows, err := h.rec.StudentMonth(c.Request().Context(), studentID, year, month)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /attendance
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req struct {
		StudentID uint   `json:"student_id"`
		Date      string `json:"date"`
		Status    string `json:"status"`
		Notes     string `json:"notes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if req.StudentID == 0 || req.Date == "" || req.Status == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}

	day, err := parseDay(strings.TrimSpace(req.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"date": "must be YYYY-MM-DD or RFC3339"},
		})
	}
	status, err := attendance.ParseStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return attendanceError(c, err)
	}

	rec, err := h.rec.Mark(c.Request().Context(), req.StudentID, day, status, strings.TrimSpace(req.Notes))
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /attendance/:id
func (h *AttendanceHandler) Delete(c echo.Context) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	ok, err := h.rec.Delete(c.Request().Context(), id)
	if err != nil {
		return attendanceError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DELETE /attendance/student/:id/month?year=&month=
func (h *AttendanceHandler) DeleteMonth(c echo.Context) error {
	studentID := uint(atoiOr(c.Param("id"), 0))
	year := atoiOr(c.QueryParam("year"), 0)
	month := atoiOr(c.QueryParam("month"), 0)
	if studentID == 0 || year == 0 || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	n, err := h.rec.DeleteMonth(c.Request().Context(), studentID, year, month)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"deleted": n})
}

// GET /attendance/student/:id/summary?year=&month=
func (h *AttendanceHandler) Summary(c echo.Context) error {
	studentID := uint(atoiOr(c.Param("id"), 0))
	year := atoiOr(c.QueryParam("year"), 0)
	month := atoiOr(c.QueryParam("month"), 0)
	if studentID == 0 || year == 0 || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}
	sum, err := h.rec.Summary(c.Request().Context(), studentID, year, month)
	if err != nil {
		return attendanceError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}
