package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rishebss/fifac-backend/database"
	"github.com/rishebss/fifac-backend/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /dashboard/overview
// Returns the counters the landing page renders: leads by status, active
// students, this month's collected fees, today's present count.
func (h *DashboardHandler) Overview(c echo.Context) error {
	today := time.Now().Format("2006-01-02")
	month := time.Now().Format("2006-01")

	leadRows := []struct {
		Status string
		N      int64
	}{}
	if err := database.DB.Model(&models.Lead{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&leadRows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	leads := map[string]int64{}
	for _, r := range leadRows {
		leads[r.Status] = r.N
	}

	var activeStudents int64
	if err := database.DB.Model(&models.Student{}).
		Where("status = ?", "active").
		Count(&activeStudents).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var collected struct {
		Total int64
		Count int64
	}
	if err := database.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("month = ?", month).
		Scan(&collected).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var presentToday int64
	if err := database.DB.Model(&models.AttendanceRecord{}).
		Where("date = ? AND status = ?", today, "present").
		Count(&presentToday).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"leads":           leads,
		"active_students": activeStudents,
		"payments_month": map[string]any{
			"month": month,
			"total": collected.Total,
			"count": collected.Count,
		},
		"present_today": presentToday,
	})
}
